// Package conversation holds the in-memory, append-only message log of a chat session.
package conversation

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/moecatalyst/moechat/internal/models"
)

// Store is an ordered, append-only sequence of messages.
// Insertion order is display order. Nothing is ever removed or rewritten,
// and the store lives only as long as the process.
type Store struct {
	id        string
	createdAt time.Time

	mu       sync.RWMutex
	messages []models.Message
}

// New creates an empty conversation
func New() *Store {
	return &Store{
		id:        uuid.NewString(),
		createdAt: time.Now(),
		messages:  []models.Message{},
	}
}

// ID returns the session identifier used in logs
func (s *Store) ID() string {
	return s.id
}

// CreatedAt returns when the session started
func (s *Store) CreatedAt() time.Time {
	return s.createdAt
}

// Append adds a message at the end and returns its index
func (s *Store) Append(msg models.Message) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}
	s.messages = append(s.messages, msg)
	return len(s.messages) - 1
}

// Messages returns a copy of all messages in order
func (s *Store) Messages() []models.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Since returns a copy of the messages starting at index from
func (s *Store) Since(from int) []models.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if from < 0 {
		from = 0
	}
	if from >= len(s.messages) {
		return nil
	}
	out := make([]models.Message, len(s.messages)-from)
	copy(out, s.messages[from:])
	return out
}

// Len returns the number of messages
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}

// IsEmpty reports whether nothing has been said yet
func (s *Store) IsEmpty() bool {
	return s.Len() == 0
}

// Last returns the newest message
func (s *Store) Last() (models.Message, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.messages) == 0 {
		return models.Message{}, false
	}
	return s.messages[len(s.messages)-1], true
}

// Counts returns how many user and assistant messages exist
func (s *Store) Counts() (user, assistant int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, m := range s.messages {
		if m.IsUser() {
			user++
		} else {
			assistant++
		}
	}
	return user, assistant
}
