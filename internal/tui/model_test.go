package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/moecatalyst/moechat/internal/api"
	"github.com/moecatalyst/moechat/internal/chat"
	"github.com/moecatalyst/moechat/internal/models"
	"github.com/moecatalyst/moechat/internal/render"
)

type testHarness struct {
	model    Model
	pipeline *chat.Pipeline
	mock     *api.MockClient
	copied   string
	copyErr  error
}

func newHarness(t *testing.T, reply string) *testHarness {
	t.Helper()

	h := &testHarness{mock: api.NewMockClient(reply)}
	h.pipeline = chat.New(h.mock, chat.WithStrings(models.StringsFor(models.LocaleEnglish)))
	h.model = NewChatModel(h.pipeline, Options{
		Render: render.DefaultOptions().WithStyle(render.StyleNoTTY),
		Clipboard: func(s string) error {
			if h.copyErr != nil {
				return h.copyErr
			}
			h.copied = s
			return nil
		},
	})
	h.update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return h
}

func (h *testHarness) update(msg tea.Msg) tea.Cmd {
	updated, cmd := h.model.Update(msg)
	h.model = updated.(Model)
	return cmd
}

func (h *testHarness) typeText(text string) {
	h.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

func (h *testHarness) enter() tea.Cmd {
	return h.update(tea.KeyMsg{Type: tea.KeyEnter})
}

// roundTrip runs the pending request and feeds its reply back
func (h *testHarness) roundTrip(t *testing.T) {
	t.Helper()
	req, ok := h.pipeline.Pending()
	if !ok {
		t.Fatal("expected a pending request")
	}
	h.update(h.model.exchange(req)())
}

func TestView_WelcomeWhenEmpty(t *testing.T) {
	h := newHarness(t, "Hello")
	view := h.model.View()

	s := models.StringsFor(models.LocaleEnglish)
	if !strings.Contains(view, s.WelcomeTitle) {
		t.Errorf("expected welcome title in view")
	}
	if !strings.Contains(view, s.Footer) {
		t.Errorf("expected footer tag line in view")
	}
	if !strings.Contains(view, models.ProductName) {
		t.Errorf("expected product name in header")
	}
}

func TestView_BeforeWindowSize(t *testing.T) {
	pipeline := chat.New(api.NewMockClient(""))
	m := NewChatModel(pipeline, Options{})
	view := m.View()
	if !strings.Contains(view, models.ProductName) {
		t.Errorf("expected product name before the first resize, got %q", view)
	}
	if strings.Contains(view, pipeline.Strings().Thinking) {
		t.Error("thinking text must not show while nothing is in flight")
	}
}

func TestTypingUpdatesDraft(t *testing.T) {
	h := newHarness(t, "Hello")
	h.typeText("Hi")

	if got := h.pipeline.Draft(); got != "Hi" {
		t.Errorf("expected draft %q, got %q", "Hi", got)
	}
	if !h.pipeline.CanSend() {
		t.Error("expected send to be enabled")
	}
}

func TestEnterSubmitsAndSettles(t *testing.T) {
	h := newHarness(t, "Hello")
	h.typeText("Hi")

	cmd := h.enter()
	if cmd == nil {
		t.Fatal("expected a command for the round trip")
	}

	if !h.pipeline.Busy() {
		t.Error("expected busy after submit")
	}
	if h.model.textarea.Value() != "" || h.pipeline.Draft() != "" {
		t.Error("expected draft cleared at submit time")
	}
	if h.pipeline.Conversation().Len() != 1 {
		t.Errorf("expected 1 message, got %d", h.pipeline.Conversation().Len())
	}

	h.roundTrip(t)

	if h.pipeline.Busy() {
		t.Error("expected busy cleared after reply")
	}
	msgs := h.pipeline.Conversation().Messages()
	if len(msgs) != 2 || msgs[1].Text != "Hello" {
		t.Fatalf("unexpected conversation: %+v", msgs)
	}
	if !strings.Contains(h.model.View(), "Hello") {
		t.Error("expected reply in view")
	}
	if h.mock.LastPrompt() != "Hi" {
		t.Errorf("expected prompt %q, got %q", "Hi", h.mock.LastPrompt())
	}
}

func TestLongPasteSentWhole(t *testing.T) {
	h := newHarness(t, "Hello")
	long := strings.Repeat("ç", 6000)

	h.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(long), Paste: true})
	if got := len([]rune(h.pipeline.Draft())); got != 6000 {
		t.Fatalf("expected 6000 runes in draft, got %d", got)
	}

	h.enter()
	h.roundTrip(t)

	if got := h.mock.LastPrompt(); got != long {
		t.Errorf("expected the whole paste to be sent, got %d runes", len([]rune(got)))
	}
}

func TestEnterWithBlankDraftDoesNothing(t *testing.T) {
	h := newHarness(t, "Hello")
	h.typeText("   ")

	if cmd := h.enter(); cmd != nil {
		t.Error("expected no command for a blank draft")
	}
	if !h.pipeline.Conversation().IsEmpty() {
		t.Error("expected no message for a blank draft")
	}
	if h.mock.CallCount() != 0 {
		t.Error("expected no network call")
	}
	if strings.Contains(h.model.textarea.Value(), "\n") {
		t.Error("enter must not insert a newline")
	}
}

func TestInputIgnoredWhileBusy(t *testing.T) {
	h := newHarness(t, "Hello")
	h.typeText("first")
	h.enter()

	h.typeText("second")
	if h.model.textarea.Value() != "" {
		t.Errorf("expected keys ignored while busy, got %q", h.model.textarea.Value())
	}

	if cmd := h.enter(); cmd != nil {
		t.Error("expected enter ignored while busy")
	}
	if h.pipeline.Conversation().Len() != 1 {
		t.Errorf("expected 1 message while busy, got %d", h.pipeline.Conversation().Len())
	}
}

func TestNewlineKeys(t *testing.T) {
	tests := []struct {
		name string
		key  tea.KeyMsg
	}{
		{"alt+enter", tea.KeyMsg{Type: tea.KeyEnter, Alt: true}},
		{"ctrl+j", tea.KeyMsg{Type: tea.KeyCtrlJ}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, "Hello")
			h.typeText("a")
			h.update(tt.key)
			h.typeText("b")

			if got := h.model.textarea.Value(); got != "a\nb" {
				t.Errorf("expected %q, got %q", "a\nb", got)
			}
			if !h.pipeline.Conversation().IsEmpty() {
				t.Error("newline key must not submit")
			}
		})
	}
}

func TestThinkingIndicator(t *testing.T) {
	h := newHarness(t, "Hello")
	thinking := models.StringsFor(models.LocaleEnglish).Thinking

	h.typeText("Hi")
	h.enter()
	if !strings.Contains(h.model.renderMessages(), thinking) {
		t.Error("expected thinking indicator while busy")
	}

	h.roundTrip(t)
	if strings.Contains(h.model.renderMessages(), thinking) {
		t.Error("expected thinking indicator removed after reply")
	}
}

func TestAnimationTickOnlyWhileBusy(t *testing.T) {
	h := newHarness(t, "Hello")
	h.update(animationTickMsg{id: h.model.animationID})
	if h.model.animationFrame != 0 {
		t.Error("expected no animation while idle")
	}

	h.typeText("Hi")
	h.enter()
	h.update(animationTickMsg{id: h.model.animationID})
	if h.model.animationFrame != 1 {
		t.Errorf("expected frame 1, got %d", h.model.animationFrame)
	}
}

func TestAnimationTickFromEarlierRequestIgnored(t *testing.T) {
	h := newHarness(t, "Hello")

	h.typeText("Hi")
	h.enter()
	first := h.model.animationID
	h.roundTrip(t)

	h.typeText("Again")
	h.enter()
	if h.model.animationID == first {
		t.Fatal("expected a new animation id for the second request")
	}

	if cmd := h.update(animationTickMsg{id: first}); cmd != nil {
		if _, ok := cmd().(animationTickMsg); ok {
			t.Error("stale tick must not schedule another tick")
		}
	}
	if h.model.animationFrame != 0 {
		t.Errorf("stale tick advanced the frame to %d", h.model.animationFrame)
	}

	h.update(animationTickMsg{id: h.model.animationID})
	if h.model.animationFrame != 1 {
		t.Errorf("expected frame 1, got %d", h.model.animationFrame)
	}
}

func TestConnectionErrorShownAsAssistantMessage(t *testing.T) {
	h := newHarness(t, "")
	h.mock.Err = errors.New("connection refused")

	h.typeText("Hi")
	h.enter()
	h.roundTrip(t)

	want := models.StringsFor(models.LocaleEnglish).ConnectionError
	msgs := h.pipeline.Conversation().Messages()
	if len(msgs) != 2 || msgs[1].Text != want {
		t.Fatalf("expected error text as assistant message, got %+v", msgs)
	}
	if h.pipeline.Busy() {
		t.Error("expected busy cleared after failure")
	}
}

func TestStaleReplyIgnored(t *testing.T) {
	h := newHarness(t, "Hello")
	h.typeText("Hi")
	h.enter()

	h.update(replyMsg{request: chat.Request{ID: "stale"}, reply: "late"})
	if h.pipeline.Conversation().Len() != 1 {
		t.Error("expected stale reply to be dropped")
	}
	if !h.pipeline.Busy() {
		t.Error("expected still busy")
	}
}

func TestCopyTranscript(t *testing.T) {
	h := newHarness(t, "Hello")
	s := models.StringsFor(models.LocaleEnglish)

	h.update(tea.KeyMsg{Type: tea.KeyCtrlY})
	if h.copied != "" {
		t.Error("expected nothing copied for an empty conversation")
	}
	if h.model.notice != s.CopyEmpty {
		t.Errorf("expected notice %q, got %q", s.CopyEmpty, h.model.notice)
	}

	h.typeText("Hi")
	h.enter()
	h.roundTrip(t)

	cmd := h.update(tea.KeyMsg{Type: tea.KeyCtrlY})
	if cmd == nil {
		t.Error("expected a command clearing the notice")
	}
	if !strings.Contains(h.copied, "Hi") || !strings.Contains(h.copied, "Hello") {
		t.Errorf("unexpected transcript: %q", h.copied)
	}
	if h.model.notice != s.Copied {
		t.Errorf("expected notice %q, got %q", s.Copied, h.model.notice)
	}

	h.update(clearNoticeMsg{id: h.model.noticeID})
	if h.model.notice != "" {
		t.Error("expected notice cleared")
	}
}

func TestCopyTranscriptError(t *testing.T) {
	h := newHarness(t, "Hello")
	h.copyErr = errors.New("no clipboard utility")

	h.typeText("Hi")
	h.enter()
	h.roundTrip(t)
	h.update(tea.KeyMsg{Type: tea.KeyCtrlY})

	if !h.model.noticeIsError || h.model.notice != "no clipboard utility" {
		t.Errorf("expected error notice, got %q", h.model.notice)
	}
}

func TestStaleNoticeClearIgnored(t *testing.T) {
	h := newHarness(t, "Hello")
	h.update(tea.KeyMsg{Type: tea.KeyCtrlY})
	h.update(clearNoticeMsg{id: h.model.noticeID - 1})
	if h.model.notice == "" {
		t.Error("expected notice kept for an older id")
	}
}

func TestQuitKeys(t *testing.T) {
	for _, k := range []tea.KeyType{tea.KeyEsc, tea.KeyCtrlC} {
		h := newHarness(t, "Hello")
		cmd := h.update(tea.KeyMsg{Type: k})
		if cmd == nil {
			t.Fatalf("expected quit command for %v", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("expected QuitMsg for %v", k)
		}
	}
}

func TestUserMessageRightAligned(t *testing.T) {
	h := newHarness(t, "Hello")
	width := 60

	out := h.model.renderMessage(models.NewUserMessage("Hi"), width)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected label and bubble lines, got %q", out)
	}
	bubble := lines[1]
	if !strings.HasPrefix(bubble, strings.Repeat(" ", 10)) {
		t.Errorf("expected leading padding, got %q", bubble)
	}
	if !strings.HasSuffix(strings.TrimRight(bubble, " "), "Hi") {
		t.Errorf("expected text at the right edge, got %q", bubble)
	}
}

func TestAssistantMessageLeftAligned(t *testing.T) {
	h := newHarness(t, "Hello")

	out := h.model.renderMessage(models.NewAssistantMessage("**Hello**"), 60)
	if !strings.HasPrefix(out, "✦ "+models.ProductName) {
		t.Errorf("expected assistant label first, got %q", out)
	}
	if !strings.Contains(out, "Hello") {
		t.Errorf("expected reply text, got %q", out)
	}
}

func TestBubbleCacheResetsOnResize(t *testing.T) {
	h := newHarness(t, "Hello")
	h.typeText("Hi")
	h.enter()
	h.roundTrip(t)

	if len(h.model.bubbles.items) != 2 {
		t.Fatalf("expected 2 cached bubbles, got %d", len(h.model.bubbles.items))
	}
	before := h.model.bubbles.width

	h.update(tea.WindowSizeMsg{Width: 70, Height: 30})
	if h.model.bubbles.width == before {
		t.Error("expected cache width to follow the window")
	}
	if len(h.model.bubbles.items) != 2 {
		t.Errorf("expected bubbles re-rendered, got %d", len(h.model.bubbles.items))
	}
}

func TestFormatError(t *testing.T) {
	if FormatError(nil) != "" {
		t.Error("expected empty string for nil error")
	}
	out := FormatError(errors.New("boom"))
	if !strings.Contains(out, "boom") {
		t.Errorf("expected error text, got %q", out)
	}
}
