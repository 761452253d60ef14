package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"designforge/internal/conversation"
	"designforge/internal/domain/design"
)

// Session is the per-user iterative design state: the chat transcript, the
// last accepted document, and the pool of images generated so far. A failed
// generation never touches a stored session; handlers commit with Save only
// after the whole pipeline succeeds.
type Session struct {
	ID        string                    `json:"id"`
	Artboard  design.Artboard           `json:"artboard"`
	History   conversation.Conversation `json:"history"`
	Document  *design.Document          `json:"document,omitempty"`
	Pool      *design.ImagePool         `json:"pool"`
	CreatedAt time.Time                 `json:"created_at"`
	UpdatedAt time.Time                 `json:"updated_at"`
}

// DefaultArtboard is used when a session is created without dimensions.
var DefaultArtboard = design.Artboard{Width: 1080, Height: 1080}

func New(artboard design.Artboard) *Session {
	if artboard.Width <= 0 || artboard.Height <= 0 {
		artboard = DefaultArtboard
	}
	now := time.Now().UTC()
	return &Session{
		ID:        uuid.NewString(),
		Artboard:  artboard,
		Pool:      design.NewImagePool(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Clone deep-copies the session so callers can work on a draft and discard
// it on failure.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	out := *s
	out.History = s.History.Clone()
	out.Document = s.Document.Clone()
	out.Pool = design.NewImagePool()
	if s.Pool != nil {
		for _, img := range s.Pool.List() {
			out.Pool.Add(img)
		}
	}
	return &out
}

// normalize repairs fields that deserialization may leave nil.
func (s *Session) normalize() {
	if s.Pool == nil {
		s.Pool = design.NewImagePool()
	}
}

// MarshalBinary lets stores persist a session as one JSON blob.
func (s *Session) MarshalBinary() ([]byte, error) {
	return json.Marshal(s)
}

func (s *Session) UnmarshalBinary(data []byte) error {
	if err := json.Unmarshal(data, s); err != nil {
		return err
	}
	s.normalize()
	return nil
}

// Store persists sessions. Get returns a copy the caller owns; changes only
// become visible after Save.
type Store interface {
	Create(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}
