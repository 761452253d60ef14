package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"designforge/internal/conversation"
	"designforge/internal/domain/design"
	"designforge/internal/pipeline"
	"designforge/internal/render"
	"designforge/internal/session"
)

// Generator is the slice of the pipeline the handlers need; tests substitute
// a fake.
type Generator interface {
	GenerateConcept(ctx context.Context, history conversation.Conversation) (string, error)
	Generate(ctx context.Context, history conversation.Conversation, previous *design.Document, pool *design.ImagePool, artboard design.Artboard) (*pipeline.Result, error)
}

// App bundles the dependencies the HTTP handlers operate on.
type App struct {
	Sessions session.Store
	Pipeline Generator
	Renderer *render.Renderer
	Logger   zerolog.Logger
}

func NewApp(sessions session.Store, pipe Generator, renderer *render.Renderer, logger zerolog.Logger) *App {
	return &App{Sessions: sessions, Pipeline: pipe, Renderer: renderer, Logger: logger}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, slug, message string) {
	a.json(w, code, map[string]string{"error": slug, "message": message})
}
