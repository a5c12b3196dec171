package render

import (
	"strings"
	"testing"

	"github.com/moecatalyst/moechat/internal/config"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	if opts.Width != 80 {
		t.Errorf("expected Width=80, got %d", opts.Width)
	}
	if opts.Style != StyleDark {
		t.Errorf("expected Style=%q, got %q", StyleDark, opts.Style)
	}
	if !opts.EnableEmoji || !opts.PreserveNewLines || !opts.TableWrap {
		t.Errorf("unexpected defaults: %+v", opts)
	}
	if opts.InlineTableLinks {
		t.Error("expected InlineTableLinks=false")
	}
}

func TestOptionsBuilders(t *testing.T) {
	opts := DefaultOptions().
		WithWidth(40).
		WithStyle(StyleLight).
		WithEmoji(false).
		WithPreserveNewLines(false)

	if opts.Width != 40 || opts.Style != StyleLight || opts.EnableEmoji || opts.PreserveNewLines {
		t.Errorf("builders not applied: %+v", opts)
	}
	if !opts.TableWrap {
		t.Error("untouched fields should be preserved")
	}
}

func TestFromMarkdownConfig(t *testing.T) {
	md := config.MarkdownConfig{
		Style:            StyleDracula,
		EnableEmoji:      false,
		PreserveNewLines: false,
		TableWrap:        false,
		InlineTableLinks: true,
	}

	opts := DefaultOptions().FromMarkdownConfig(md)
	if opts.Style != StyleDracula {
		t.Errorf("expected style %q, got %q", StyleDracula, opts.Style)
	}
	if opts.EnableEmoji || opts.PreserveNewLines || opts.TableWrap || !opts.InlineTableLinks {
		t.Errorf("flags not copied: %+v", opts)
	}

	md.Style = ""
	if got := DefaultOptions().FromMarkdownConfig(md).Style; got != StyleDark {
		t.Errorf("empty style should keep default, got %q", got)
	}
}

func TestMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains []string
	}{
		{"heading", "# Başlık", []string{"Başlık"}},
		{"bold", "**kalın** metin", []string{"kalın", "metin"}},
		{"list", "- bir\n- iki", []string{"bir", "iki"}},
		{"code", "```go\nfmt.Println(1)\n```", []string{"Println"}},
		{"plain", "Merhaba", []string{"Merhaba"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Markdown(tt.input, DefaultOptions().WithStyle(StyleNoTTY))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("output %q missing %q", out, want)
				}
			}
		})
	}
}

func TestReply_WrapsAtBubbleWidth(t *testing.T) {
	long := strings.Repeat("kelime ", 40)
	out := Reply(long, DefaultOptions().WithStyle(StyleNoTTY).WithWidth(30))
	if strings.Count(out, "\n") < 3 {
		t.Errorf("expected wrapped output, got %q", out)
	}
}

func TestReply_BlankContent(t *testing.T) {
	if out := Reply("  ", DefaultOptions()); out != "  " {
		t.Errorf("expected blank content unchanged, got %q", out)
	}
}

func TestMarkdownEmoji(t *testing.T) {
	out, err := Markdown(":rocket:", DefaultOptions().WithStyle(StyleNoTTY))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(out, ":rocket:") {
		t.Errorf("expected emoji shortcode to be converted, got %q", out)
	}
}

func TestReply(t *testing.T) {
	out := Reply("**Merhaba**", DefaultOptions().WithStyle(StyleNoTTY))
	if !strings.Contains(out, "Merhaba") {
		t.Errorf("expected reply text, got %q", out)
	}
	if strings.HasPrefix(out, "\n") || strings.HasSuffix(out, "\n") {
		t.Errorf("expected trimmed newlines, got %q", out)
	}
}

func TestReply_FallsBackToRawText(t *testing.T) {
	out := Reply("ham metin", DefaultOptions().WithStyle("no_such_style_file"))
	if out != "ham metin" {
		t.Errorf("expected raw text on render failure, got %q", out)
	}
}
