package render

import "strings"

// Markdown renders markdown for the terminal with a cached renderer.
// Zero width or style fall back to the defaults.
func Markdown(content string, opts Options) (string, error) {
	r, err := renderers.get(opts)
	if err != nil {
		return "", err
	}
	return r.render(content)
}

// Reply renders an assistant reply for a chat bubble whose inner width is
// opts.Width. Glamour's document margins are trimmed, and the raw text is
// returned if rendering fails.
func Reply(content string, opts Options) string {
	if strings.TrimSpace(content) == "" {
		return content
	}
	out, err := Markdown(content, opts)
	if err != nil {
		return content
	}
	return strings.Trim(out, "\n")
}
