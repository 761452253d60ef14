package pipeline

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"designforge/internal/conversation"
	"designforge/internal/domain/design"
	"designforge/internal/providers/llm"
	"designforge/internal/render"
	"designforge/internal/resolver"
)

// Service runs the full generation pipeline: concept, structured design,
// image resolution, markup. It holds no session state; callers pass the
// history, previous document and pool explicitly and commit results
// themselves, so a failed run cannot corrupt accepted state.
type Service struct {
	llm      llm.Client
	resolver *resolver.Resolver
	renderer *render.Renderer
	logger   zerolog.Logger
}

func NewService(client llm.Client, res *resolver.Resolver, renderer *render.Renderer, logger zerolog.Logger) *Service {
	return &Service{llm: client, resolver: res, renderer: renderer, logger: logger}
}

// Result is one successful end-to-end generation.
type Result struct {
	Concept  string                `json:"concept"`
	Document *design.Document      `json:"document"`
	Images   []resolver.ItemResult `json:"images"`
	HTML     string                `json:"html"`
}

// GenerateConcept asks the model for a free-text design concept based on the
// conversation so far.
func (s *Service) GenerateConcept(ctx context.Context, history conversation.Conversation) (string, error) {
	concept, err := s.llm.GenerateText(ctx, conversation.BuildConceptRequest(history))
	if err != nil {
		return "", fmt.Errorf("pipeline: concept generation: %w", err)
	}
	return concept, nil
}

// Generate runs the whole pipeline. previous may be nil for a first
// generation; artboard provides the size hint when there is no previous
// document. The pool receives newly generated images as a side effect, so
// callers working on a draft copy can discard it wholesale on failure.
func (s *Service) Generate(
	ctx context.Context,
	history conversation.Conversation,
	previous *design.Document,
	pool *design.ImagePool,
	artboard design.Artboard,
) (*Result, error) {
	concept, err := s.GenerateConcept(ctx, history)
	if err != nil {
		return nil, err
	}
	s.logger.Debug().Int("history_len", len(history.Messages)).Msg("concept generated")

	hint := fmt.Sprintf("%.0fx%.0f", artboard.Width, artboard.Height)
	req, err := conversation.BuildDesignRequest(history, concept, previous, hint)
	if err != nil {
		return nil, fmt.Errorf("pipeline: build design request: %w", err)
	}
	doc, err := s.llm.GenerateDesign(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("pipeline: design generation: %w", err)
	}
	s.logger.Debug().Int("items", len(doc.Items)).Msg("structured design generated")

	outcome, err := s.resolver.Resolve(ctx, doc, pool)
	if err != nil {
		return nil, fmt.Errorf("pipeline: resolve images: %w", err)
	}

	return &Result{
		Concept:  concept,
		Document: outcome.Document,
		Images:   outcome.Results,
		HTML:     s.renderer.HTML(outcome.Document),
	}, nil
}
