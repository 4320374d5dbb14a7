// File path: internal/session/types.go
package session

import "time"

// Message direction values stored in the message_type column.
const (
	TypeUser = "user"
	TypeAI   = "ai"
)

type User struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ChatSession groups the messages of one conversation. UpdatedAt moves on
// every append so session lists stay sorted by recency.
type ChatSession struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Title     string    `db:"title" json:"title"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type ChatMessage struct {
	Seq        int64     `db:"seq" json:"-"`
	ID         string    `db:"id" json:"id"`
	SessionID  string    `db:"session_id" json:"session_id"`
	Type       string    `db:"message_type" json:"message_type"`
	Content    string    `db:"content" json:"content"`
	Source     string    `db:"source" json:"source,omitempty"`
	Confidence float64   `db:"confidence" json:"confidence"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
