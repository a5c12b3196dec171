// Package models contains data types and constants for the MoECatalyst chat client.
package models

import "strings"

// ProductName is shown in headers and transcripts
const ProductName = "MoECatalyst"

// DefaultEndpoint is the chat endpoint used when nothing is configured
const DefaultEndpoint = "http://localhost:5000/chat"

// Request/response field names of the chat endpoint
const (
	FieldMessage  = "message"
	FieldResponse = "response"
)

// Locale identifies a UI string table.
type Locale string

const (
	LocaleTurkish Locale = "tr"
	LocaleEnglish Locale = "en"

	DefaultLocale = LocaleTurkish
)

// Strings holds every fixed piece of UI copy.
type Strings struct {
	Locale Locale

	// Conversation content
	FallbackReply   string // valid response without text
	ConnectionError string // any failed round trip

	// Renderer
	WelcomeTitle    string
	WelcomeSubtitle string
	Thinking        string
	Placeholder     string
	Footer          string
	UserLabel       string
	AssistantLabel  string

	// Status bar
	KeySend    string
	KeyNewline string
	KeyCopy    string
	KeyQuit    string
	KeyScroll  string
	Copied     string
	CopyEmpty  string
}

var turkishStrings = Strings{
	Locale:          LocaleTurkish,
	FallbackReply:   "Üzgünüm, bir yanıt alamadım.",
	ConnectionError: "Bağlantı hatası oluştu. Lütfen tekrar deneyin.",
	WelcomeTitle:    ProductName + "'e Hoş Geldiniz!",
	WelcomeSubtitle: "Benimle sohbet etmek için aşağıdaki alana mesajınızı yazın.",
	Thinking:        "Düşünüyor...",
	Placeholder:     "Mesajınızı buraya yazın...",
	Footer:          ProductName + " yapay zeka asistanınız",
	UserLabel:       "Siz",
	AssistantLabel:  ProductName,
	KeySend:         "Gönder",
	KeyNewline:      "Yeni satır",
	KeyCopy:         "Kopyala",
	KeyQuit:         "Çıkış",
	KeyScroll:       "Kaydır",
	Copied:          "Sohbet panoya kopyalandı",
	CopyEmpty:       "Kopyalanacak mesaj yok",
}

var englishStrings = Strings{
	Locale:          LocaleEnglish,
	FallbackReply:   "Sorry, I could not get a response.",
	ConnectionError: "A connection error occurred. Please try again.",
	WelcomeTitle:    "Welcome to " + ProductName + "!",
	WelcomeSubtitle: "Type your message in the field below to chat with me.",
	Thinking:        "Thinking...",
	Placeholder:     "Type your message here...",
	Footer:          ProductName + ", your AI assistant",
	UserLabel:       "You",
	AssistantLabel:  ProductName,
	KeySend:         "Send",
	KeyNewline:      "Newline",
	KeyCopy:         "Copy",
	KeyQuit:         "Quit",
	KeyScroll:       "Scroll",
	Copied:          "Conversation copied to clipboard",
	CopyEmpty:       "Nothing to copy yet",
}

// ParseLocale normalizes a locale name such as "tr_TR.UTF-8" or "EN".
// The second return value is false when the locale is not supported.
func ParseLocale(name string) (Locale, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if i := strings.IndexAny(name, "_-."); i >= 0 {
		name = name[:i]
	}
	switch Locale(name) {
	case LocaleTurkish:
		return LocaleTurkish, true
	case LocaleEnglish:
		return LocaleEnglish, true
	default:
		return DefaultLocale, false
	}
}

// StringsFor returns the string table for a locale, falling back to Turkish
func StringsFor(locale Locale) Strings {
	switch locale {
	case LocaleEnglish:
		return englishStrings
	default:
		return turkishStrings
	}
}

// AvailableLocales returns the supported locale names
func AvailableLocales() []string {
	return []string{string(LocaleTurkish), string(LocaleEnglish)}
}
