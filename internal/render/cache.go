package render

import (
	"sync"

	"github.com/charmbracelet/glamour"
)

// maxRenderers bounds how many option sets keep a renderer. Each window
// resize gives the chat bubbles a new wrap width, so the oldest go first.
const maxRenderers = 8

// minWrap is the narrowest column a bubble is wrapped at
const minWrap = 20

// bubbleRenderer serializes Render calls on one glamour renderer,
// which is not safe for concurrent use.
type bubbleRenderer struct {
	mu       sync.Mutex
	renderer *glamour.TermRenderer
}

func (b *bubbleRenderer) render(content string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.renderer.Render(content)
}

// rendererCache maps normalized options to renderers, evicting in the
// order option sets were first seen.
type rendererCache struct {
	mu    sync.Mutex
	items map[Options]*bubbleRenderer
	order []Options
}

var renderers = newRendererCache()

func newRendererCache() *rendererCache {
	return &rendererCache{items: make(map[Options]*bubbleRenderer)}
}

// get returns the renderer for opts, building it on first use
func (c *rendererCache) get(opts Options) (*bubbleRenderer, error) {
	opts = normalize(opts)

	c.mu.Lock()
	defer c.mu.Unlock()

	if r, ok := c.items[opts]; ok {
		return r, nil
	}

	tr, err := newTermRenderer(opts)
	if err != nil {
		return nil, err
	}
	r := &bubbleRenderer{renderer: tr}

	if len(c.order) >= maxRenderers {
		delete(c.items, c.order[0])
		c.order = c.order[1:]
	}
	c.items[opts] = r
	c.order = append(c.order, opts)
	return r, nil
}

func (c *rendererCache) has(opts Options) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.items[normalize(opts)]
	return ok
}

func (c *rendererCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// normalize fills in the style and clamps the wrap width so bubbles that
// end up with the same layout share a renderer
func normalize(opts Options) Options {
	if opts.Style == "" {
		opts.Style = StyleDark
	}
	if opts.Width <= 0 {
		opts.Width = DefaultOptions().Width
	}
	if opts.Width < minWrap {
		opts.Width = minWrap
	}
	return opts
}

func newTermRenderer(opts Options) (*glamour.TermRenderer, error) {
	rendererOpts := []glamour.TermRendererOption{
		glamour.WithStylePath(opts.Style),
		glamour.WithWordWrap(opts.Width),
		glamour.WithTableWrap(opts.TableWrap),
		glamour.WithInlineTableLinks(opts.InlineTableLinks),
	}
	if opts.EnableEmoji {
		rendererOpts = append(rendererOpts, glamour.WithEmoji())
	}
	if opts.PreserveNewLines {
		rendererOpts = append(rendererOpts, glamour.WithPreservedNewLines())
	}
	return glamour.NewTermRenderer(rendererOpts...)
}
