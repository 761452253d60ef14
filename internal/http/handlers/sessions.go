package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"designforge/internal/conversation"
	"designforge/internal/domain"
	"designforge/internal/domain/design"
	"designforge/internal/session"
)

type sessionCreateRequest struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type sessionResponse struct {
	ID       string             `json:"id"`
	Artboard design.Artboard    `json:"artboard"`
	Document *design.Document   `json:"document,omitempty"`
	Pool     []design.PoolImage `json:"pool"`
	Messages int                `json:"messages"`
}

func toSessionResponse(s *session.Session) sessionResponse {
	return sessionResponse{
		ID:       s.ID,
		Artboard: s.Artboard,
		Document: s.Document,
		Pool:     s.Pool.List(),
		Messages: len(s.History.Messages),
	}
}

func (a *App) SessionCreate(w http.ResponseWriter, r *http.Request) {
	var req sessionCreateRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
			return
		}
	}
	s := session.New(design.Artboard{Width: req.Width, Height: req.Height})
	if err := a.Sessions.Create(r.Context(), s); err != nil {
		a.Logger.Error().Err(err).Msg("create session")
		a.error(w, http.StatusInternalServerError, "internal", "failed to create session")
		return
	}
	a.json(w, http.StatusCreated, toSessionResponse(s))
}

func (a *App) SessionGet(w http.ResponseWriter, r *http.Request) {
	s, ok := a.loadSession(w, r)
	if !ok {
		return
	}
	a.json(w, http.StatusOK, toSessionResponse(s))
}

type sessionMessageRequest struct {
	Text     string `json:"text"`
	ImageURL string `json:"image_url"`
}

// SessionMessage appends a user turn to the transcript without triggering a
// generation, so a prompt can be assembled over several messages.
func (a *App) SessionMessage(w http.ResponseWriter, r *http.Request) {
	s, ok := a.loadSession(w, r)
	if !ok {
		return
	}
	var req sessionMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if strings.TrimSpace(req.Text) == "" && strings.TrimSpace(req.ImageURL) == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "text or image_url is required")
		return
	}
	s.History = s.History.Append(userMessage(req.Text, req.ImageURL))
	if err := a.Sessions.Save(r.Context(), s); err != nil {
		a.Logger.Error().Err(err).Str("session", s.ID).Msg("save session")
		a.error(w, http.StatusInternalServerError, "internal", "failed to save session")
		return
	}
	a.json(w, http.StatusOK, toSessionResponse(s))
}

// PoolImageDelete removes an image from the session's reuse pool. Pool
// removal is always an explicit user action, never implicit.
func (a *App) PoolImageDelete(w http.ResponseWriter, r *http.Request) {
	s, ok := a.loadSession(w, r)
	if !ok {
		return
	}
	imageID := chi.URLParam(r, "imageID")
	if !s.Pool.Remove(imageID) {
		a.error(w, http.StatusNotFound, "not_found", "image not in pool")
		return
	}
	if err := a.Sessions.Save(r.Context(), s); err != nil {
		a.Logger.Error().Err(err).Str("session", s.ID).Msg("save session")
		a.error(w, http.StatusInternalServerError, "internal", "failed to save session")
		return
	}
	a.json(w, http.StatusOK, toSessionResponse(s))
}

func (a *App) loadSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id := chi.URLParam(r, "id")
	if id == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "session id required")
		return nil, false
	}
	s, err := a.Sessions.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "session not found")
			return nil, false
		}
		a.Logger.Error().Err(err).Str("session", id).Msg("load session")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load session")
		return nil, false
	}
	return s, true
}

func userMessage(text, imageURL string) conversation.Message {
	if imageURL != "" {
		return conversation.ImageMessage(conversation.RoleUser, text, imageURL)
	}
	return conversation.TextMessage(conversation.RoleUser, text)
}
