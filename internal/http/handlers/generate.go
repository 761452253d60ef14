package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"designforge/internal/conversation"
	"designforge/internal/domain"
)

type generateRequest struct {
	Prompt   string `json:"prompt"`
	ImageURL string `json:"image_url"`
}

// Generate runs the full pipeline for a session: concept, structured design,
// image resolution, markup. The stored session is only overwritten after
// every step succeeds; a failed run leaves the previously accepted design
// and pool untouched so the user can simply retry.
func (a *App) Generate(w http.ResponseWriter, r *http.Request) {
	stored, ok := a.loadSession(w, r)
	if !ok {
		return
	}
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "prompt is required")
		return
	}

	draft := stored.Clone()
	draft.History = draft.History.Append(userMessage(req.Prompt, req.ImageURL))

	artboard := draft.Artboard
	if draft.Document != nil {
		artboard = draft.Document.Artboard
	}

	result, err := a.Pipeline.Generate(r.Context(), draft.History, draft.Document, draft.Pool, artboard)
	if err != nil {
		a.generateError(w, err)
		return
	}

	draft.Document = result.Document
	draft.Artboard = result.Document.Artboard
	draft.History = draft.History.Append(conversation.TextMessage(conversation.RoleAssistant, result.Concept))
	if err := a.Sessions.Save(r.Context(), draft); err != nil {
		a.Logger.Error().Err(err).Str("session", draft.ID).Msg("save session")
		a.error(w, http.StatusInternalServerError, "internal", "failed to save session")
		return
	}

	a.json(w, http.StatusOK, map[string]any{
		"session_id": draft.ID,
		"concept":    result.Concept,
		"document":   result.Document,
		"images":     result.Images,
		"html":       result.HTML,
		"pool":       draft.Pool.List(),
	})
}

func (a *App) generateError(w http.ResponseWriter, err error) {
	var refErr *domain.ReferenceError
	switch {
	case errors.As(err, &refErr):
		a.error(w, http.StatusUnprocessableEntity, "unknown_image_reference", refErr.Error())
	case errors.Is(err, domain.ErrSchemaViolation):
		a.error(w, http.StatusBadGateway, "schema_violation", "model returned an invalid design document")
	case errors.Is(err, domain.ErrEmptyResponse):
		a.error(w, http.StatusBadGateway, "empty_response", "model returned no usable output")
	case errors.Is(err, domain.ErrImageGeneration):
		a.error(w, http.StatusBadGateway, "image_generation_failed", err.Error())
	default:
		a.Logger.Error().Err(err).Msg("generation failed")
		a.error(w, http.StatusInternalServerError, "internal", "generation failed")
	}
}
