package render

import (
	"sync"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name      string
		in        Options
		wantStyle string
		wantWidth int
	}{
		{"zero value", Options{}, StyleDark, 80},
		{"negative width", Options{Style: StyleLight, Width: -3}, StyleLight, 80},
		{"narrow bubble", Options{Style: StyleNoTTY, Width: 7}, StyleNoTTY, minWrap},
		{"kept", Options{Style: StyleDracula, Width: 64}, StyleDracula, 64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalize(tt.in)
			if got.Style != tt.wantStyle || got.Width != tt.wantWidth {
				t.Errorf("normalize(%+v) = %q/%d, want %q/%d",
					tt.in, got.Style, got.Width, tt.wantStyle, tt.wantWidth)
			}
		})
	}
}

func TestRendererCache_SharesEquivalentOptions(t *testing.T) {
	c := newRendererCache()

	first, err := c.get(Options{Width: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := c.get(Options{Style: StyleDark, Width: minWrap})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first != second {
		t.Error("expected both bubbles to share one renderer")
	}
	if c.size() != 1 {
		t.Errorf("expected 1 renderer, got %d", c.size())
	}
}

func TestRendererCache_EvictsOldestWidth(t *testing.T) {
	c := newRendererCache()
	base := DefaultOptions().WithStyle(StyleNoTTY)

	for i := 0; i <= maxRenderers; i++ {
		if _, err := c.get(base.WithWidth(40 + i)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if c.size() != maxRenderers {
		t.Errorf("expected %d renderers, got %d", maxRenderers, c.size())
	}
	if c.has(base.WithWidth(40)) {
		t.Error("expected the first width to be evicted")
	}
	if !c.has(base.WithWidth(40 + maxRenderers)) {
		t.Error("expected the newest width to be cached")
	}
}

func TestRendererCache_UnknownStyleNotCached(t *testing.T) {
	c := newRendererCache()
	if _, err := c.get(DefaultOptions().WithStyle("no_such_style_file")); err == nil {
		t.Error("expected error for unknown style")
	}
	if c.size() != 0 {
		t.Errorf("failed renderer must not be cached, got %d", c.size())
	}
}

func TestReply_Concurrent(t *testing.T) {
	opts := DefaultOptions().WithStyle(StyleNoTTY).WithWidth(60)
	const reply = "**Merhaba!** Size nasıl yardımcı olabilirim?"
	want := Reply(reply, opts)

	var wg sync.WaitGroup
	results := make(chan string, 32)

	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- Reply(reply, opts)
		}()
	}

	wg.Wait()
	close(results)

	for out := range results {
		if out != want {
			t.Errorf("concurrent render differs: got %q, want %q", out, want)
		}
	}
	if !renderers.has(opts) {
		t.Error("expected the bubble renderer to be cached")
	}
}
