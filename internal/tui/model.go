package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/moecatalyst/moechat/internal/chat"
	"github.com/moecatalyst/moechat/internal/conversation"
	"github.com/moecatalyst/moechat/internal/models"
	"github.com/moecatalyst/moechat/internal/render"
)

// noticeDuration is how long status notices stay visible
const noticeDuration = 3 * time.Second

// animationTickMsg advances the thinking indicator of one request
type animationTickMsg struct {
	id int
}

// Message types for the TUI
type (
	replyMsg struct {
		request chat.Request
		reply   string
		err     error
	}
	clearNoticeMsg struct {
		id int
	}
)

// Options configures the chat window
type Options struct {
	// Render controls markdown in assistant bubbles. Width is set from the window.
	Render render.Options

	// Theme is a TUI theme name. Empty keeps the active theme.
	Theme string

	// Clipboard receives the transcript on ctrl+y. Nil uses the system clipboard.
	Clipboard func(string) error

	// Context bounds outbound requests. Nil means context.Background().
	Context context.Context
}

// Model represents the TUI state
type Model struct {
	pipeline   *chat.Pipeline
	strings    models.Strings
	renderOpts render.Options
	ctx        context.Context
	copyFn     func(string) error

	// UI components
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	// State
	ready          bool
	animationFrame int
	animationID    int
	notice         string
	noticeIsError  bool
	noticeID       int
	bubbles        *bubbleCache

	// Dimensions
	width  int
	height int
}

// bubbleCache keeps rendered messages so glamour runs once per message
// and window width
type bubbleCache struct {
	width int
	items []string
}

// NewChatModel creates a new chat TUI model
func NewChatModel(pipeline *chat.Pipeline, opts Options) Model {
	if opts.Theme != "" && render.SetTUITheme(opts.Theme) {
		UpdateTheme()
	}

	s := pipeline.Strings()

	ta := textarea.New()
	ta.Placeholder = s.Placeholder
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("alt+enter", "ctrl+j"))
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(colorText)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(colorTextDim)
	ta.BlurredStyle = ta.FocusedStyle
	ta.SetValue(pipeline.Draft())
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Points
	sp.Style = loadingStyle

	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	copyFn := opts.Clipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}
	renderOpts := opts.Render
	if renderOpts.Style == "" {
		renderOpts = render.DefaultOptions()
	}

	return Model{
		pipeline:   pipeline,
		strings:    s,
		renderOpts: renderOpts,
		ctx:        ctx,
		copyFn:     copyFn,
		textarea:   ta,
		spinner:    sp,
		bubbles:    &bubbleCache{},
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.spinner.Tick,
	)
}

// animationTick returns a command that sends one animation tick for id
func animationTick(id int) tea.Cmd {
	return tea.Tick(time.Millisecond*80, func(time.Time) tea.Msg {
		return animationTickMsg{id: id}
	})
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 3 // Header panel with border
		inputHeight := 4  // Input panel with border
		statusHeight := 1 // Status bar
		footerHeight := 1 // Tag line
		borders := 2      // Messages panel border

		vpHeight := m.height - headerHeight - inputHeight - statusHeight - footerHeight - borders
		if vpHeight < 5 {
			vpHeight = 5
		}

		contentWidth := m.width - 4
		if contentWidth < 20 {
			contentWidth = 20
		}

		if !m.ready {
			m.viewport = viewport.New(contentWidth, vpHeight)
			m.viewport.KeyMap = scrollKeys()
			m.ready = true
		} else {
			m.viewport.Width = contentWidth
			m.viewport.Height = vpHeight
		}
		m.textarea.SetWidth(contentWidth - 2)
		m.refreshViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "ctrl+y":
			return m.copyTranscript()

		case "enter":
			return m.submit()
		}

	case replyMsg:
		if _, ok := m.pipeline.Settle(msg.request, msg.reply, msg.err); ok {
			m.refreshViewport()
			m.textarea.Focus()
		}

	case clearNoticeMsg:
		if msg.id == m.noticeID {
			m.notice = ""
			m.noticeIsError = false
		}

	case spinner.TickMsg:
		if m.pipeline.Busy() {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case animationTickMsg:
		if msg.id == m.animationID && m.pipeline.Busy() {
			m.animationFrame++
			m.refreshViewport()
			cmds = append(cmds, animationTick(msg.id))
		}
	}

	// Only keys reach the textarea, and only while idle
	if _, ok := msg.(tea.KeyMsg); ok && !m.pipeline.Busy() {
		m.textarea, cmd = m.textarea.Update(msg)
		cmds = append(cmds, cmd)
		m.pipeline.SetDraft(m.textarea.Value())
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// submit hands the draft to the pipeline and starts the round trip
func (m Model) submit() (tea.Model, tea.Cmd) {
	req, ok := m.pipeline.Begin(m.textarea.Value())
	if !ok {
		return m, nil
	}

	m.textarea.Reset()
	m.textarea.Blur()
	m.animationFrame = 0
	m.animationID++
	m.refreshViewport()

	return m, tea.Batch(
		m.exchange(req),
		m.spinner.Tick,
		animationTick(m.animationID),
	)
}

// scrollKeys keeps letter keys free for typing
func scrollKeys() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown: key.NewBinding(key.WithKeys("pgdown")),
		PageUp:   key.NewBinding(key.WithKeys("pgup")),
		Up:       key.NewBinding(key.WithKeys("up")),
		Down:     key.NewBinding(key.WithKeys("down")),
	}
}

// exchange runs the network call off the UI goroutine
func (m Model) exchange(req chat.Request) tea.Cmd {
	pipeline := m.pipeline
	ctx := m.ctx
	return func() tea.Msg {
		reply, err := pipeline.Exchange(ctx, req)
		return replyMsg{request: req, reply: reply, err: err}
	}
}

// copyTranscript puts the conversation as markdown on the clipboard
func (m Model) copyTranscript() (tea.Model, tea.Cmd) {
	store := m.pipeline.Conversation()
	if store.IsEmpty() {
		return m.showNotice(m.strings.CopyEmpty, false)
	}

	transcript := store.ExportToMarkdown(conversation.ExportOptionsFor(m.strings))
	if err := m.copyFn(transcript); err != nil {
		return m.showNotice(err.Error(), true)
	}
	return m.showNotice(m.strings.Copied, false)
}

// showNotice displays a status line message for noticeDuration
func (m Model) showNotice(text string, isError bool) (tea.Model, tea.Cmd) {
	m.noticeID++
	m.notice = text
	m.noticeIsError = isError
	id := m.noticeID
	return m, tea.Tick(noticeDuration, func(time.Time) tea.Msg {
		return clearNoticeMsg{id: id}
	})
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return titleStyle.Render("✦ " + models.ProductName)
	}

	contentWidth := m.viewport.Width
	var sections []string

	// Header
	headerParts := []string{
		titleStyle.Render("✦ " + models.ProductName),
		hintStyle.Render("  •  "),
		subtitleStyle.Render(m.pipeline.Conversation().ID()[:8]),
	}
	if m.pipeline.Busy() {
		headerParts = append(headerParts, hintStyle.Render("  "), m.spinner.View())
	}
	headerContent := lipgloss.JoinHorizontal(lipgloss.Center, headerParts...)
	sections = append(sections, headerStyle.Width(contentWidth).Render(headerContent))

	// Messages
	var messagesContent string
	if m.pipeline.Conversation().IsEmpty() {
		messagesContent = m.renderWelcome()
	} else {
		messagesContent = m.viewport.View()
	}
	sections = append(sections, messagesAreaStyle.
		Width(contentWidth).
		Height(m.viewport.Height).
		Render(messagesContent))

	// Input
	sections = append(sections, inputPanelStyle.Width(contentWidth).Render(m.textarea.View()))

	// Status bar and tag line
	sections = append(sections,
		m.renderStatusBar(contentWidth),
		footerStyle.Width(contentWidth).Render(m.strings.Footer),
	)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderWelcome renders the placeholder shown before the first message
func (m Model) renderWelcome() string {
	width := m.viewport.Width - 4
	height := m.viewport.Height

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		welcomeIconStyle.Width(width).Render("✦"),
		"",
		welcomeTitleStyle.Width(width).Render(m.strings.WelcomeTitle),
		"",
		welcomeStyle.Width(width).Render(m.strings.WelcomeSubtitle),
	)

	topPadding := (height - lipgloss.Height(content)) / 2
	if topPadding < 0 {
		topPadding = 0
	}

	return strings.Repeat("\n", topPadding) + content
}

// renderThinking renders the animated indicator shown while a reply is pending
func (m Model) renderThinking() string {
	chars := []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}
	frame := m.animationFrame

	spin := lipgloss.NewStyle().
		Foreground(gradientColors[frame%len(gradientColors)]).
		Bold(true).
		Render(chars[frame%len(chars)])

	var dots strings.Builder
	numDots := (frame / 3) % 4
	for i := 0; i < 3; i++ {
		if i < numDots {
			dots.WriteString(lipgloss.NewStyle().Foreground(gradientColors[(frame+i)%len(gradientColors)]).Render("●"))
		} else {
			dots.WriteString(lipgloss.NewStyle().Foreground(colorTextMute).Render("○"))
		}
	}

	label := assistantLabelStyle.Render("✦ " + m.strings.AssistantLabel)
	row := fmt.Sprintf("%s %s %s", spin, thinkingStyle.Render(m.strings.Thinking), dots.String())
	return label + "\n" + row
}

// renderStatusBar renders the key hints, dimming Send while it is disabled
func (m Model) renderStatusBar(width int) string {
	if m.notice != "" {
		style := noticeStyle
		if m.noticeIsError {
			style = errorStyle
		}
		return statusBarStyle.Width(width).Align(lipgloss.Center).Render(style.Render(m.notice))
	}

	canSend := m.pipeline.CanSend()
	shortcuts := []struct {
		key     string
		desc    string
		enabled bool
	}{
		{"Enter", m.strings.KeySend, canSend},
		{"Alt+Enter", m.strings.KeyNewline, true},
		{"Ctrl+Y", m.strings.KeyCopy, true},
		{"Esc", m.strings.KeyQuit, true},
		{"↑↓", m.strings.KeyScroll, true},
	}

	items := make([]string, 0, len(shortcuts))
	for _, s := range shortcuts {
		if !s.enabled {
			items = append(items, statusDisabledStyle.Render(s.key+" "+s.desc))
			continue
		}
		items = append(items, statusKeyStyle.Render(s.key)+statusDescStyle.Render(" "+s.desc))
	}

	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(strings.Join(items, "  │  "))
}

// refreshViewport rebuilds the transcript and scrolls to the newest content
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderMessages())
	m.viewport.GotoBottom()
}

// renderMessages renders every message plus the thinking row while busy
func (m *Model) renderMessages() string {
	width := m.viewport.Width - 2
	if m.bubbles.width != width {
		m.bubbles.width = width
		m.bubbles.items = nil
	}

	messages := m.pipeline.Conversation().Messages()
	for i := len(m.bubbles.items); i < len(messages); i++ {
		m.bubbles.items = append(m.bubbles.items, m.renderMessage(messages[i], width))
	}

	parts := append([]string(nil), m.bubbles.items[:len(messages)]...)
	if m.pipeline.Busy() {
		parts = append(parts, m.renderThinking())
	}
	return strings.Join(parts, "\n\n")
}

// renderMessage renders one message as a labelled bubble
func (m Model) renderMessage(msg models.Message, width int) string {
	maxBubble := width * 4 / 5
	if maxBubble < 10 {
		maxBubble = width
	}

	if msg.IsUser() {
		bubbleWidth := lipgloss.Width(msg.Text) + userBubbleStyle.GetHorizontalPadding()
		if bubbleWidth > maxBubble {
			bubbleWidth = maxBubble
		}
		label := userLabelStyle.Render(m.strings.UserLabel + " ●")
		bubble := userBubbleStyle.Width(bubbleWidth).Render(msg.Text)
		return lipgloss.PlaceHorizontal(width, lipgloss.Right, label) + "\n" +
			lipgloss.PlaceHorizontal(width, lipgloss.Right, bubble)
	}

	frame := assistantBubbleStyle.GetHorizontalFrameSize()
	body := render.Reply(msg.Text, m.renderOpts.WithWidth(maxBubble-frame))
	label := assistantLabelStyle.Render("✦ " + m.strings.AssistantLabel)
	return label + "\n" + assistantBubbleStyle.Render(body)
}

// RunChat starts the chat TUI and blocks until the user quits
func RunChat(pipeline *chat.Pipeline, opts Options) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	opts.Context = ctx

	p := tea.NewProgram(
		NewChatModel(pipeline, opts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
