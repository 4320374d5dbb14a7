// File path: internal/session/queries.go
package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a session or user does not exist.
var ErrNotFound = errors.New("session: not found")

// EnsureUser returns the stored user, creating it on first sight.
func (s *Store) EnsureUser(ctx context.Context, id, name string) (User, error) {
	if s == nil || s.db == nil {
		return User{}, errors.New("session store not initialised")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return User{}, fmt.Errorf("user id required")
	}
	var user User
	err := s.db.GetContext(ctx, &user, `SELECT * FROM users WHERE id = ?`, id)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return User{}, fmt.Errorf("select user: %w", err)
	}
	user = User{ID: id, Name: strings.TrimSpace(name), CreatedAt: time.Now().UTC()}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, name, created_at) VALUES (?, ?, ?)`,
		user.ID, user.Name, user.CreatedAt); err != nil {
		return User{}, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

// CreateSession opens a new conversation for the user.
func (s *Store) CreateSession(ctx context.Context, userID, title string) (ChatSession, error) {
	if s == nil || s.db == nil {
		return ChatSession{}, errors.New("session store not initialised")
	}
	if _, err := s.EnsureUser(ctx, userID, ""); err != nil {
		return ChatSession{}, err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		title = "New conversation"
	}
	now := time.Now().UTC()
	sess := ChatSession{
		ID:        uuid.NewString(),
		UserID:    strings.TrimSpace(userID),
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO chat_sessions (id, user_id, title, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		sess.ID, sess.UserID, sess.Title, sess.CreatedAt, sess.UpdatedAt); err != nil {
		return ChatSession{}, fmt.Errorf("insert session: %w", err)
	}
	return sess, nil
}

// SessionByID fetches one session or ErrNotFound.
func (s *Store) SessionByID(ctx context.Context, id string) (ChatSession, error) {
	if s == nil || s.db == nil {
		return ChatSession{}, errors.New("session store not initialised")
	}
	var sess ChatSession
	err := s.db.GetContext(ctx, &sess, `SELECT * FROM chat_sessions WHERE id = ?`, strings.TrimSpace(id))
	if errors.Is(err, sql.ErrNoRows) {
		return ChatSession{}, ErrNotFound
	}
	if err != nil {
		return ChatSession{}, fmt.Errorf("select session: %w", err)
	}
	return sess, nil
}

// ListSessions returns the user's sessions, most recently active first.
func (s *Store) ListSessions(ctx context.Context, userID string) ([]ChatSession, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("session store not initialised")
	}
	sessions := []ChatSession{}
	if err := s.db.SelectContext(ctx, &sessions,
		`SELECT * FROM chat_sessions WHERE user_id = ? ORDER BY updated_at DESC, id`,
		strings.TrimSpace(userID)); err != nil {
		return nil, fmt.Errorf("select sessions: %w", err)
	}
	return sessions, nil
}

// AppendMessage stores one message and bumps the session's updated_at.
func (s *Store) AppendMessage(ctx context.Context, msg ChatMessage) (ChatMessage, error) {
	if s == nil || s.db == nil {
		return ChatMessage{}, errors.New("session store not initialised")
	}
	if strings.TrimSpace(msg.SessionID) == "" {
		return ChatMessage{}, fmt.Errorf("session id required")
	}
	if msg.Type != TypeUser && msg.Type != TypeAI {
		return ChatMessage{}, fmt.Errorf("invalid message type %q", msg.Type)
	}
	if _, err := s.SessionByID(ctx, msg.SessionID); err != nil {
		return ChatMessage{}, err
	}
	if strings.TrimSpace(msg.ID) == "" {
		msg.ID = uuid.NewString()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (id, session_id, message_type, content, source, confidence, created_at)
                 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		msg.ID, msg.SessionID, msg.Type, msg.Content, msg.Source, msg.Confidence, msg.CreatedAt)
	if err != nil {
		return ChatMessage{}, fmt.Errorf("insert message: %w", err)
	}
	if seq, err := res.LastInsertId(); err == nil {
		msg.Seq = seq
	}
	if _, err := s.db.ExecContext(ctx,
		`UPDATE chat_sessions SET updated_at = ? WHERE id = ?`,
		time.Now().UTC(), msg.SessionID); err != nil {
		return ChatMessage{}, fmt.Errorf("touch session: %w", err)
	}
	return msg, nil
}

// History returns the session's messages in insertion order.
func (s *Store) History(ctx context.Context, sessionID string) ([]ChatMessage, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("session store not initialised")
	}
	if _, err := s.SessionByID(ctx, sessionID); err != nil {
		return nil, err
	}
	messages := []ChatMessage{}
	if err := s.db.SelectContext(ctx, &messages,
		`SELECT * FROM messages WHERE session_id = ? ORDER BY seq`,
		strings.TrimSpace(sessionID)); err != nil {
		return nil, fmt.Errorf("select messages: %w", err)
	}
	return messages, nil
}
