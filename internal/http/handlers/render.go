package handlers

import (
	"encoding/json"
	"net/http"

	"designforge/internal/domain/design"
)

type renderRequest struct {
	Document *design.Document `json:"document"`
}

// RenderDocument renders a posted resolved document without touching any
// session, for clients that keep their own document state.
func (a *App) RenderDocument(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.Document == nil {
		a.error(w, http.StatusBadRequest, "bad_request", "document is required")
		return
	}
	if err := req.Document.Validate(); err != nil {
		a.error(w, http.StatusBadRequest, "invalid_document", err.Error())
		return
	}
	a.json(w, http.StatusOK, map[string]string{"html": a.Renderer.HTML(req.Document)})
}
