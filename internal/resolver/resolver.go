package resolver

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"designforge/internal/domain"
	"designforge/internal/domain/design"
	"designforge/internal/providers/image"
	"designforge/internal/providers/removal"
	"designforge/internal/storage"
)

// Options wires the resolver's collaborators. Remover and Store are
// optional: without a Remover the remove_background flag degrades to a
// recorded fallback, and a Store is only needed for generators that return
// raw bytes.
type Options struct {
	Generator image.Generator
	Remover   removal.Remover
	Store     storage.Store
	Logger    zerolog.Logger
	// Limiter throttles generation calls across the fan-out. Nil means
	// unthrottled.
	Limiter *rate.Limiter
}

// ItemResult records what happened to one image item during a pass, so
// callers and tests can observe fallbacks instead of inferring them from the
// final URL.
type ItemResult struct {
	Index             int
	ImageID           string
	URL               string
	Generated         bool
	RemovalRequested  bool
	RemovalFallback   bool
	BackgroundRemoved bool
}

// Outcome is a successful resolution: a document whose image items are all
// enriched, plus the per-item audit trail.
type Outcome struct {
	Document *design.Document
	Results  []ItemResult
}

// Resolver turns new_image and existing_image items into enriched_image
// items by invoking the generation and removal collaborators.
type Resolver struct {
	generator image.Generator
	remover   removal.Remover
	store     storage.Store
	logger    zerolog.Logger
	limiter   *rate.Limiter
}

func New(opts Options) *Resolver {
	return &Resolver{
		generator: opts.Generator,
		remover:   opts.Remover,
		store:     opts.Store,
		logger:    opts.Logger,
		limiter:   opts.Limiter,
	}
}

// Resolve processes every image item in doc concurrently and returns a
// resolved copy. The input document is never mutated. Newly generated images
// are appended to pool so later generations can reference them by id. Any
// generation failure fails the whole pass; in-flight siblings finish but
// their results are discarded, and the caller's previously accepted state is
// left untouched.
func (r *Resolver) Resolve(ctx context.Context, doc *design.Document, pool *design.ImagePool) (*Outcome, error) {
	if doc == nil {
		return nil, fmt.Errorf("resolver: document is nil")
	}
	if pool == nil {
		pool = design.NewImagePool()
	}

	out := doc.Clone()
	var (
		mu      sync.Mutex
		results []ItemResult
	)
	record := func(res ItemResult) {
		mu.Lock()
		results = append(results, res)
		mu.Unlock()
	}

	eg, egCtx := errgroup.WithContext(ctx)
	for i := range out.Items {
		switch item := out.Items[i].Item.(type) {
		case design.ExistingImage:
			i, item := i, item
			eg.Go(func() error {
				enriched, err := r.reuseExisting(i, item, pool)
				if err != nil {
					return err
				}
				out.Items[i].Item = enriched
				record(ItemResult{Index: i, ImageID: enriched.ID, URL: enriched.URL})
				return nil
			})
		case design.NewImage:
			i, item := i, item
			eg.Go(func() error {
				enriched, res, err := r.generateNew(egCtx, i, item)
				if err != nil {
					return err
				}
				out.Items[i].Item = enriched
				pool.Add(design.PoolImage{ID: enriched.ID, URL: enriched.URL, Description: enriched.Description})
				record(res)
				return nil
			})
		}
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(a, b int) bool { return results[a].Index < results[b].Index })
	return &Outcome{Document: out, Results: results}, nil
}

func (r *Resolver) reuseExisting(index int, item design.ExistingImage, pool *design.ImagePool) (design.EnrichedImage, error) {
	pooled, ok := pool.Get(item.ID)
	if !ok {
		return design.EnrichedImage{}, &domain.ItemError{
			Index: index,
			Err:   &domain.ReferenceError{ID: item.ID},
		}
	}
	return design.EnrichedImage{ID: pooled.ID, URL: pooled.URL, Description: pooled.Description}, nil
}

func (r *Resolver) generateNew(ctx context.Context, index int, item design.NewImage) (design.EnrichedImage, ItemResult, error) {
	fail := func(err error) (design.EnrichedImage, ItemResult, error) {
		return design.EnrichedImage{}, ItemResult{}, &domain.ItemError{
			Index:       index,
			Description: item.Description,
			Err:         fmt.Errorf("%w: %v", domain.ErrImageGeneration, err),
		}
	}

	if r.limiter != nil {
		if err := r.limiter.Wait(ctx); err != nil {
			return fail(err)
		}
	}

	asset, err := r.generator.Generate(ctx, image.GenerateRequest{
		Description: item.Description,
		Colors:      item.Colors,
		Objects:     item.Objects,
		Mood:        item.Mood,
		Composition: item.Composition,
		Style:       item.Style,
		Width:       item.Width,
		Height:      item.Height,
	})
	if err != nil {
		return fail(err)
	}

	id := "img_" + uuid.NewString()[:8]
	url := asset.URL
	if url == "" {
		if r.store == nil {
			return fail(fmt.Errorf("%w: generator returned bytes but no store is configured", domain.ErrAssetStore))
		}
		format := asset.Format
		if format == "" {
			format = "jpg"
		}
		stored, err := r.store.Put(ctx, fmt.Sprintf("generated/%s.%s", id, format), asset.Data, "image/"+format)
		if err != nil {
			return fail(fmt.Errorf("%w: %v", domain.ErrAssetStore, err))
		}
		url = stored
	}

	res := ItemResult{Index: index, ImageID: id, Generated: true, RemovalRequested: item.RemoveBackground}
	if item.RemoveBackground {
		url = r.removeBackground(ctx, index, url, &res)
	}
	res.URL = url

	return design.EnrichedImage{ID: id, URL: url, Description: item.Description}, res, nil
}

// removeBackground runs the optional second stage. Failure is non-fatal: the
// pre-removal URL is kept and the fallback is recorded.
func (r *Resolver) removeBackground(ctx context.Context, index int, url string, res *ItemResult) string {
	if r.remover == nil {
		res.RemovalFallback = true
		r.logger.Warn().Int("item", index).Msg("background removal requested but no remover configured")
		return url
	}
	processed, err := r.remover.Remove(ctx, url)
	if err != nil {
		res.RemovalFallback = true
		r.logger.Warn().Err(err).Int("item", index).Msg("background removal failed, keeping original image")
		return url
	}
	res.BackgroundRemoved = true
	return processed
}
