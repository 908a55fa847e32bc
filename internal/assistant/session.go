// Package assistant implements the salon chat helper: a small REST
// client for a Gemini style generative API plus a bolt backed store
// that keeps per-visitor conversation history between requests.
package assistant

import (
	"path/filepath"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
)

const (
	sessionBucket = "chat_sessions"

	// MaxHistoryMessages caps stored turns per session so prompts stay
	// within the model context window.
	MaxHistoryMessages = 20
)

// Message is one conversation turn. Role is "user" or "model".
type Message struct {
	Role    string    `json:"role"`
	Content string    `json:"content"`
	SentAt  time.Time `json:"sent_at"`
}

// SessionStore persists chat histories keyed by session id.
type SessionStore struct {
	db *bolt.DB
}

// OpenSessionStore opens (or creates) the session database under dir.
func OpenSessionStore(dir string) (*SessionStore, error) {
	db, err := bolt.Open(filepath.Join(dir, "chat-sessions.db"), 0o600,
		&bolt.Options{Timeout: 3 * time.Second})
	if err != nil {
		return nil, errors.Wrap(err, "open chat session store")
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(sessionBucket))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "init chat session bucket")
	}
	return &SessionStore{db: db}, nil
}

func (s *SessionStore) Close() error {
	return s.db.Close()
}

// History returns the stored turns for sid, oldest first. An unknown
// session yields an empty history.
func (s *SessionStore) History(sid string) ([]Message, error) {
	var msgs []Message
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket([]byte(sessionBucket)).Get([]byte(sid))
		if raw == nil {
			return nil
		}
		return jsoniter.Unmarshal(raw, &msgs)
	})
	if err != nil {
		return nil, errors.Wrapf(err, "load chat session %s", sid)
	}
	return msgs, nil
}

// Append adds turns to sid's history, trimming the oldest entries past
// MaxHistoryMessages.
func (s *SessionStore) Append(sid string, turns ...Message) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		bkt := tx.Bucket([]byte(sessionBucket))
		var msgs []Message
		if raw := bkt.Get([]byte(sid)); raw != nil {
			if err := jsoniter.Unmarshal(raw, &msgs); err != nil {
				msgs = nil
			}
		}
		msgs = append(msgs, turns...)
		if len(msgs) > MaxHistoryMessages {
			msgs = msgs[len(msgs)-MaxHistoryMessages:]
		}
		raw, err := jsoniter.Marshal(msgs)
		if err != nil {
			return err
		}
		return bkt.Put([]byte(sid), raw)
	})
	return errors.Wrapf(err, "append chat session %s", sid)
}

// Clear forgets sid's history.
func (s *SessionStore) Clear(sid string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(sessionBucket)).Delete([]byte(sid))
	})
	return errors.Wrapf(err, "clear chat session %s", sid)
}
