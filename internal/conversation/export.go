package conversation

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/moecatalyst/moechat/internal/models"
)

// ExportFormat represents the format for exporting conversations
type ExportFormat string

const (
	ExportFormatMarkdown ExportFormat = "markdown"
	ExportFormatJSON     ExportFormat = "json"
)

// ExportOptions configures how conversations are exported
type ExportOptions struct {
	Format            ExportFormat
	UserLabel         string
	AssistantLabel    string
	IncludeTimestamps bool
}

// DefaultExportOptions returns sensible defaults for export
func DefaultExportOptions() ExportOptions {
	return ExportOptions{
		Format:            ExportFormatMarkdown,
		UserLabel:         "You",
		AssistantLabel:    models.ProductName,
		IncludeTimestamps: true,
	}
}

// ExportOptionsFor returns defaults using the labels of a string table
func ExportOptionsFor(s models.Strings) ExportOptions {
	opts := DefaultExportOptions()
	opts.UserLabel = s.UserLabel
	opts.AssistantLabel = s.AssistantLabel
	return opts
}

// Export renders the conversation in the configured format
func (s *Store) Export(opts ExportOptions) (string, error) {
	switch opts.Format {
	case ExportFormatJSON:
		data, err := s.ExportToJSON(opts)
		if err != nil {
			return "", err
		}
		return string(data), nil
	case ExportFormatMarkdown, "":
		return s.ExportToMarkdown(opts), nil
	default:
		return "", fmt.Errorf("unsupported export format: %s", opts.Format)
	}
}

// ExportToMarkdown renders the conversation as a markdown transcript
func (s *Store) ExportToMarkdown(opts ExportOptions) string {
	messages := s.Messages()
	if len(messages) == 0 {
		return ""
	}

	var sb strings.Builder

	sb.WriteString("# ")
	sb.WriteString(models.ProductName)
	sb.WriteString("\n\n")
	sb.WriteString("**Started:** ")
	sb.WriteString(s.createdAt.Format("2006-01-02 15:04:05"))
	sb.WriteString("\n")
	sb.WriteString("**Messages:** ")
	sb.WriteString(fmt.Sprintf("%d", len(messages)))
	sb.WriteString("\n\n---\n\n")

	for i, msg := range messages {
		label := opts.AssistantLabel
		if msg.IsUser() {
			label = opts.UserLabel
		}

		sb.WriteString("## ")
		sb.WriteString(label)
		if opts.IncludeTimestamps && !msg.CreatedAt.IsZero() {
			sb.WriteString(" (")
			sb.WriteString(msg.CreatedAt.Format("15:04:05"))
			sb.WriteString(")")
		}
		sb.WriteString("\n\n")

		sb.WriteString(msg.Text)
		sb.WriteString("\n")

		if i < len(messages)-1 {
			sb.WriteString("\n---\n\n")
		}
	}

	return sb.String()
}

type exportMessage struct {
	Origin    string     `json:"origin"`
	Text      string     `json:"text"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

type exportConversation struct {
	ID        string          `json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	Messages  []exportMessage `json:"messages"`
}

// ExportToJSON renders the conversation as indented JSON
func (s *Store) ExportToJSON(opts ExportOptions) ([]byte, error) {
	messages := s.Messages()

	out := exportConversation{
		ID:        s.id,
		CreatedAt: s.createdAt,
		Messages:  make([]exportMessage, 0, len(messages)),
	}
	for _, msg := range messages {
		em := exportMessage{Origin: msg.Origin.String(), Text: msg.Text}
		if opts.IncludeTimestamps {
			created := msg.CreatedAt
			em.CreatedAt = &created
		}
		out.Messages = append(out.Messages, em)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal conversation: %w", err)
	}
	return data, nil
}
