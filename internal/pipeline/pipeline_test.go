package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"designforge/internal/conversation"
	"designforge/internal/domain/design"
	"designforge/internal/providers/image"
	"designforge/internal/render"
	"designforge/internal/resolver"
)

type fakeLLM struct {
	concept    string
	conceptErr error
	document   *design.Document
	designErr  error
	designConv conversation.Conversation
}

func (f *fakeLLM) GenerateText(ctx context.Context, conv conversation.Conversation) (string, error) {
	if f.conceptErr != nil {
		return "", f.conceptErr
	}
	return f.concept, nil
}

func (f *fakeLLM) GenerateDesign(ctx context.Context, conv conversation.Conversation) (*design.Document, error) {
	f.designConv = conv
	if f.designErr != nil {
		return nil, f.designErr
	}
	return f.document.Clone(), nil
}

type urlGenerator struct{}

func (urlGenerator) Generate(ctx context.Context, req image.GenerateRequest) (image.Asset, error) {
	return image.Asset{URL: "https://generated.example/" + req.Description}, nil
}

func newService(client *fakeLLM) *Service {
	res := resolver.New(resolver.Options{Generator: urlGenerator{}, Logger: zerolog.Nop()})
	return NewService(client, res, render.New(zerolog.Nop()), zerolog.Nop())
}

func userHistory() conversation.Conversation {
	var c conversation.Conversation
	return c.Append(conversation.TextMessage(conversation.RoleUser, "a summer sale banner"))
}

func TestGenerate(t *testing.T) {
	client := &fakeLLM{
		concept: "Bright banner with a sun illustration.",
		document: &design.Document{
			Concept:    "summer sale",
			Background: "#ffe66d",
			Artboard:   design.Artboard{Width: 1200, Height: 628},
			Items: []design.PlacedItem{
				{Width: 400, Height: 400, ZIndex: 1, Opacity: 100,
					Item: design.NewImage{Description: "smiling sun", Width: 400, Height: 400}},
				{Width: 600, Height: 100, ZIndex: 2, Opacity: 100,
					Item: design.Text{Text: "SUMMER SALE", Align: design.AlignCenter, FitText: true}},
			},
		},
	}
	svc := newService(client)

	pool := design.NewImagePool()
	result, err := svc.Generate(context.Background(), userHistory(), nil, pool, design.Artboard{Width: 1200, Height: 628})
	require.NoError(t, err)

	assert.Equal(t, "Bright banner with a sun illustration.", result.Concept)
	assert.True(t, result.Document.Resolved())
	assert.Len(t, result.Images, 1)
	assert.Equal(t, 1, pool.Len())
	assert.Contains(t, result.HTML, "SUMMER SALE")
	assert.Contains(t, result.HTML, "https://generated.example/smiling sun")

	// The design request carried the concept and the artboard hint.
	last, ok := client.designConv.Last()
	require.True(t, ok)
	assert.Contains(t, last.Parts[0].Text, "Bright banner with a sun illustration.")
	assert.Contains(t, last.Parts[0].Text, "1200x628")
}

func TestGenerateConceptFailureStopsEarly(t *testing.T) {
	boom := errors.New("rate limited")
	client := &fakeLLM{conceptErr: boom}
	svc := newService(client)

	_, err := svc.Generate(context.Background(), userHistory(), nil, design.NewImagePool(), design.Artboard{Width: 100, Height: 100})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, client.designConv.Messages)
}

func TestGenerateOmittedItemsAreDeleted(t *testing.T) {
	previous := &design.Document{
		Background: "#ffffff",
		Artboard:   design.Artboard{Width: 500, Height: 500},
		Items: []design.PlacedItem{
			{Width: 100, Height: 40, ZIndex: 1, Opacity: 100,
				Item: design.Text{Text: "OLD HEADLINE", Align: design.AlignLeft}},
			{Width: 200, Height: 200, ZIndex: 2, Opacity: 100,
				Item: design.EnrichedImage{ID: "img_keep", URL: "https://assets.example/keep.png"}},
			{Width: 500, Height: 80, ZIndex: 0, Opacity: 100,
				Item: design.Rectangle{Fill: "#eeeeee"}},
		},
	}
	// The model edits the previous document and drops the headline.
	client := &fakeLLM{
		concept: "remove the headline",
		document: &design.Document{
			Background: "#ffffff",
			Artboard:   design.Artboard{Width: 500, Height: 500},
			Items:      []design.PlacedItem{previous.Items[1], previous.Items[2]},
		},
	}
	svc := newService(client)

	pool := design.NewImagePool()
	pool.Add(design.PoolImage{ID: "img_keep", URL: "https://assets.example/keep.png"})
	result, err := svc.Generate(context.Background(), userHistory(), previous, pool, previous.Artboard)
	require.NoError(t, err)

	require.Len(t, result.Document.Items, 2)
	for _, placed := range result.Document.Items {
		if txt, ok := placed.Item.(design.Text); ok {
			assert.NotEqual(t, "OLD HEADLINE", txt.Text)
		}
	}
	assert.NotContains(t, result.HTML, "OLD HEADLINE")
	// The caller's previous document is untouched; the deletion only exists
	// in the new state until the caller commits it.
	assert.Len(t, previous.Items, 3)
}

func TestGenerateEmbedsPreviousDocument(t *testing.T) {
	client := &fakeLLM{
		concept: "keep the layout, change the text",
		document: &design.Document{
			Background: "#fff",
			Artboard:   design.Artboard{Width: 500, Height: 500},
		},
	}
	svc := newService(client)

	previous := &design.Document{
		Background: "#abcdef",
		Artboard:   design.Artboard{Width: 500, Height: 500},
	}
	_, err := svc.Generate(context.Background(), userHistory(), previous, design.NewImagePool(), previous.Artboard)
	require.NoError(t, err)

	last, _ := client.designConv.Last()
	assert.True(t, strings.Contains(last.Parts[0].Text, `"background":"#abcdef"`))
}
