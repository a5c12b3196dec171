package models

import "testing"

func TestOriginString(t *testing.T) {
	tests := []struct {
		origin Origin
		want   string
	}{
		{OriginUser, "user"},
		{OriginAssistant, "assistant"},
		{Origin(42), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.origin.String(); got != tt.want {
			t.Errorf("Origin(%d).String() = %q, want %q", tt.origin, got, tt.want)
		}
	}
}

func TestNewMessages(t *testing.T) {
	u := NewUserMessage("merhaba")
	if !u.IsUser() || u.Text != "merhaba" {
		t.Errorf("unexpected user message: %+v", u)
	}
	if u.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}

	a := NewAssistantMessage("selam")
	if a.IsUser() || a.Origin != OriginAssistant {
		t.Errorf("unexpected assistant message: %+v", a)
	}
}

func TestParseLocale(t *testing.T) {
	tests := []struct {
		input  string
		want   Locale
		wantOK bool
	}{
		{"tr", LocaleTurkish, true},
		{"TR", LocaleTurkish, true},
		{"tr_TR.UTF-8", LocaleTurkish, true},
		{"en", LocaleEnglish, true},
		{"en-US", LocaleEnglish, true},
		{" en ", LocaleEnglish, true},
		{"de", DefaultLocale, false},
		{"", DefaultLocale, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseLocale(tt.input)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseLocale(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestStringsFor(t *testing.T) {
	tr := StringsFor(LocaleTurkish)
	if tr.ConnectionError != "Bağlantı hatası oluştu. Lütfen tekrar deneyin." {
		t.Errorf("unexpected Turkish connection error text: %q", tr.ConnectionError)
	}
	if tr.FallbackReply != "Üzgünüm, bir yanıt alamadım." {
		t.Errorf("unexpected Turkish fallback text: %q", tr.FallbackReply)
	}

	en := StringsFor(LocaleEnglish)
	if en.Locale != LocaleEnglish || en.Thinking != "Thinking..." {
		t.Errorf("unexpected English strings: %+v", en)
	}

	// Unknown locales use the default table
	if got := StringsFor(Locale("xx")); got.Locale != DefaultLocale {
		t.Errorf("expected default locale, got %q", got.Locale)
	}
}

func TestStringsComplete(t *testing.T) {
	for _, name := range AvailableLocales() {
		s := StringsFor(Locale(name))
		fields := map[string]string{
			"FallbackReply":   s.FallbackReply,
			"ConnectionError": s.ConnectionError,
			"WelcomeTitle":    s.WelcomeTitle,
			"Thinking":        s.Thinking,
			"Placeholder":     s.Placeholder,
			"Footer":          s.Footer,
			"UserLabel":       s.UserLabel,
			"AssistantLabel":  s.AssistantLabel,
			"Copied":          s.Copied,
		}
		for field, value := range fields {
			if value == "" {
				t.Errorf("locale %s: %s is empty", name, field)
			}
		}
	}
}
