package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"designforge/internal/conversation"
	"designforge/internal/domain"
	"designforge/internal/domain/design"
)

const (
	openAIDefaultTimeout = 60 * time.Second
	defaultOpenAIModel   = "gpt-4o"
	defaultOpenAIBaseURL = "https://api.openai.com/v1"
)

// OpenAIOptions configures the OpenAI-compatible chat client.
type OpenAIOptions struct {
	APIKey       string
	Model        string
	BaseURL      string
	Organization string
	Temperature  float64
	MaxTokens    int
	HTTPClient   *http.Client
}

// OpenAIClient talks to an OpenAI-compatible chat completions endpoint. It
// performs exactly one request per call and leaves retries to the caller.
type OpenAIClient struct {
	apiKey       string
	model        string
	baseURL      string
	organization string
	temperature  float64
	maxTokens    int
	client       *http.Client
}

type openAIChatRequest struct {
	Model          string          `json:"model"`
	Messages       []openAIMessage `json:"messages"`
	Temperature    float64         `json:"temperature,omitempty"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *openAIFormat   `json:"response_format,omitempty"`
}

type openAIMessage struct {
	Role    string              `json:"role"`
	Content []openAIContentPart `json:"content"`
}

type openAIContentPart struct {
	Type     string          `json:"type"`
	Text     string          `json:"text,omitempty"`
	ImageURL *openAIImageURL `json:"image_url,omitempty"`
}

type openAIImageURL struct {
	URL    string `json:"url"`
	Detail string `json:"detail,omitempty"`
}

type openAIFormat struct {
	Type       string            `json:"type"`
	JSONSchema *openAIJSONSchema `json:"json_schema,omitempty"`
}

type openAIJSONSchema struct {
	Name   string         `json:"name"`
	Strict bool           `json:"strict"`
	Schema map[string]any `json:"schema"`
}

type openAIChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func NewOpenAIClient(opts OpenAIOptions) (*OpenAIClient, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.New("openai api key is required")
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = defaultOpenAIModel
	}
	temperature := opts.Temperature
	if temperature == 0 {
		temperature = 0.9
	}
	maxTokens := opts.MaxTokens
	if maxTokens == 0 {
		maxTokens = 3000
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: openAIDefaultTimeout}
	}
	return &OpenAIClient{
		apiKey:       strings.TrimSpace(opts.APIKey),
		model:        model,
		baseURL:      baseURL,
		organization: strings.TrimSpace(opts.Organization),
		temperature:  temperature,
		maxTokens:    maxTokens,
		client:       client,
	}, nil
}

func (o *OpenAIClient) GenerateText(ctx context.Context, conv conversation.Conversation) (string, error) {
	text, err := o.complete(ctx, conv, nil)
	if err != nil {
		return "", err
	}
	return text, nil
}

func (o *OpenAIClient) GenerateDesign(ctx context.Context, conv conversation.Conversation) (*design.Document, error) {
	format := &openAIFormat{
		Type: "json_schema",
		JSONSchema: &openAIJSONSchema{
			Name:   "design_document",
			Strict: true,
			Schema: DocumentSchema(),
		},
	}
	text, err := o.complete(ctx, conv, format)
	if err != nil {
		return nil, err
	}
	doc, err := design.Parse([]byte(stripCodeFence(text)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSchemaViolation, err)
	}
	return doc, nil
}

func (o *OpenAIClient) complete(ctx context.Context, conv conversation.Conversation, format *openAIFormat) (string, error) {
	payload := openAIChatRequest{
		Model:          o.model,
		Temperature:    o.temperature,
		MaxTokens:      o.maxTokens,
		Messages:       toOpenAIMessages(conv),
		ResponseFormat: format,
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return "", fmt.Errorf("llm: encode request: %w", err)
	}
	endpoint := fmt.Sprintf("%s/chat/completions", o.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return "", fmt.Errorf("llm: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.apiKey)
	if o.organization != "" {
		req.Header.Set("OpenAI-Organization", o.organization)
	}
	resp, err := o.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("llm: request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("llm: unexpected status %d", resp.StatusCode)
	}
	var out openAIChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("llm: decode response: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices", domain.ErrEmptyResponse)
	}
	text := strings.TrimSpace(out.Choices[0].Message.Content)
	if text == "" {
		return "", domain.ErrEmptyResponse
	}
	return text, nil
}

func toOpenAIMessages(conv conversation.Conversation) []openAIMessage {
	msgs := make([]openAIMessage, 0, len(conv.Messages))
	for _, m := range conv.Messages {
		out := openAIMessage{Role: string(m.Role)}
		for _, part := range m.Parts {
			switch part.Type {
			case conversation.PartText:
				out.Content = append(out.Content, openAIContentPart{Type: "text", Text: part.Text})
			case conversation.PartImageReference:
				out.Content = append(out.Content, openAIContentPart{
					Type:     "image_url",
					ImageURL: &openAIImageURL{URL: part.ImageURL, Detail: "high"},
				})
			}
		}
		msgs = append(msgs, out)
	}
	return msgs
}

// stripCodeFence tolerates models that wrap JSON in a markdown fence despite
// instructions.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

var _ Client = (*OpenAIClient)(nil)
