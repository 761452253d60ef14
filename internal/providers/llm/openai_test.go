package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"designforge/internal/conversation"
	"designforge/internal/domain"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func fakeClient(t *testing.T, handler roundTripFunc) *OpenAIClient {
	t.Helper()
	c, err := NewOpenAIClient(OpenAIOptions{
		APIKey:     "test-key",
		HTTPClient: &http.Client{Transport: handler},
	})
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func chatResponse(content string) *http.Response {
	body := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	}
	raw, _ := json.Marshal(body)
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(string(raw))),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

func testConversation() conversation.Conversation {
	var c conversation.Conversation
	c = c.Append(conversation.TextMessage(conversation.RoleUser, "a birthday card"))
	c = c.Append(conversation.ImageMessage(conversation.RoleUser, "", "https://assets.example/ref.png"))
	return c
}

func TestGenerateText(t *testing.T) {
	var captured openAIChatRequest
	client := fakeClient(t, func(r *http.Request) (*http.Response, error) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("authorization = %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatal(err)
		}
		return chatResponse("A warm pastel birthday card concept."), nil
	})

	conv := testConversation()
	text, err := client.GenerateText(context.Background(), conv)
	if err != nil {
		t.Fatal(err)
	}
	if text != "A warm pastel birthday card concept." {
		t.Fatalf("text = %q", text)
	}
	if captured.ResponseFormat != nil {
		t.Fatal("free-text generation must not send a response format")
	}
	if len(captured.Messages) != 2 {
		t.Fatalf("got %d messages, want 2", len(captured.Messages))
	}
	if captured.Messages[1].Content[0].Type != "image_url" {
		t.Fatalf("image part type = %q", captured.Messages[1].Content[0].Type)
	}
	if captured.Messages[1].Content[0].ImageURL.Detail != "high" {
		t.Fatalf("image detail = %q", captured.Messages[1].Content[0].ImageURL.Detail)
	}
	if len(conv.Messages) != 2 {
		t.Fatal("caller conversation mutated")
	}
}

func TestGenerateTextEmptyResponse(t *testing.T) {
	client := fakeClient(t, func(r *http.Request) (*http.Response, error) {
		return chatResponse("   "), nil
	})
	_, err := client.GenerateText(context.Background(), testConversation())
	if !errors.Is(err, domain.ErrEmptyResponse) {
		t.Fatalf("err = %v, want ErrEmptyResponse", err)
	}

	client = fakeClient(t, func(r *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(`{"choices":[]}`)),
		}, nil
	})
	_, err = client.GenerateText(context.Background(), testConversation())
	if !errors.Is(err, domain.ErrEmptyResponse) {
		t.Fatalf("err = %v, want ErrEmptyResponse", err)
	}
}

func TestGenerateDesign(t *testing.T) {
	docJSON := `{
		"concept": "card",
		"background": "#fdf0f0",
		"artboard": {"width": 600, "height": 400},
		"items": [{
			"x": 50, "y": 150, "width": 500, "height": 100, "rotation": 0, "zIndex": 1, "opacity": 100,
			"item": {"type": "text", "text": "Happy Birthday", "font": "Lobster", "fontSize": 48,
				"fontWeight": 400, "fontColor": "#d94f70", "fontStyle": "normal", "width": 500,
				"align": "center", "wrap": false, "bold": false, "italic": false,
				"underline": false, "fitText": false}
		}]
	}`
	var captured openAIChatRequest
	client := fakeClient(t, func(r *http.Request) (*http.Response, error) {
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatal(err)
		}
		// Wrapped in a fence on purpose; the client must tolerate it.
		return chatResponse("```json\n" + docJSON + "\n```"), nil
	})

	doc, err := client.GenerateDesign(context.Background(), testConversation())
	if err != nil {
		t.Fatal(err)
	}
	if doc.Background != "#fdf0f0" {
		t.Fatalf("background = %q", doc.Background)
	}
	if len(doc.Items) != 1 {
		t.Fatalf("got %d items", len(doc.Items))
	}
	if captured.ResponseFormat == nil || captured.ResponseFormat.Type != "json_schema" {
		t.Fatal("structured generation must request json_schema output")
	}
	if !captured.ResponseFormat.JSONSchema.Strict {
		t.Fatal("schema must be strict")
	}
}

func TestGenerateDesignSchemaViolation(t *testing.T) {
	client := fakeClient(t, func(r *http.Request) (*http.Response, error) {
		return chatResponse(`{"concept": "broken", "artboard": {"width": 0, "height": 0}, "background": "", "items": []}`), nil
	})
	_, err := client.GenerateDesign(context.Background(), testConversation())
	if !errors.Is(err, domain.ErrSchemaViolation) {
		t.Fatalf("err = %v, want ErrSchemaViolation", err)
	}
}

func TestStripCodeFence(t *testing.T) {
	cases := map[string]string{
		"{\"a\":1}":                     `{"a":1}`,
		"```json\n{\"a\":1}\n```":       `{"a":1}`,
		"```\n{\"a\":1}\n```":           `{"a":1}`,
		"  \n```json\n{\"a\":1}\n```  ": `{"a":1}`,
	}
	for in, want := range cases {
		if got := stripCodeFence(in); got != want {
			t.Errorf("stripCodeFence(%q) = %q, want %q", in, got, want)
		}
	}
}
