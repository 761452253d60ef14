package image

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	prodiaDefaultTimeout = 120 * time.Second
	prodiaDefaultBaseURL = "https://inference.prodia.com"
	prodiaDefaultJobType = "inference.flux.schnell.txt2img.v1"
)

// ProdiaOptions configures the Prodia text-to-image client.
type ProdiaOptions struct {
	Token      string
	BaseURL    string
	JobType    string
	HTTPClient *http.Client
}

// ProdiaGenerator runs text-to-image jobs against the Prodia inference API
// and returns the resulting image bytes. The caller persists them to obtain
// a public URL.
type ProdiaGenerator struct {
	token   string
	baseURL string
	jobType string
	client  *http.Client
}

type prodiaJobRequest struct {
	Type   string          `json:"type"`
	Config prodiaJobConfig `json:"config"`
}

type prodiaJobConfig struct {
	Prompt         string `json:"prompt"`
	NegativePrompt string `json:"negative_prompt,omitempty"`
	Width          int    `json:"width,omitempty"`
	Height         int    `json:"height,omitempty"`
}

func NewProdiaGenerator(opts ProdiaOptions) (*ProdiaGenerator, error) {
	if strings.TrimSpace(opts.Token) == "" {
		return nil, errors.New("prodia token is required")
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = prodiaDefaultBaseURL
	}
	jobType := strings.TrimSpace(opts.JobType)
	if jobType == "" {
		jobType = prodiaDefaultJobType
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: prodiaDefaultTimeout}
	}
	return &ProdiaGenerator{
		token:   strings.TrimSpace(opts.Token),
		baseURL: baseURL,
		jobType: jobType,
		client:  client,
	}, nil
}

func (p *ProdiaGenerator) Generate(ctx context.Context, req GenerateRequest) (Asset, error) {
	payload := prodiaJobRequest{
		Type: p.jobType,
		Config: prodiaJobConfig{
			Prompt:         BuildPrompt(req),
			NegativePrompt: DefaultNegativePrompt,
			Width:          int(req.Width),
			Height:         int(req.Height),
		},
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return Asset{}, fmt.Errorf("prodia: encode job: %w", err)
	}
	endpoint := fmt.Sprintf("%s/v2/job", p.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return Asset{}, fmt.Errorf("prodia: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "image/jpeg")
	httpReq.Header.Set("Authorization", "Bearer "+p.token)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return Asset{}, fmt.Errorf("prodia: request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 300 {
		return Asset{}, fmt.Errorf("prodia: unexpected status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Asset{}, fmt.Errorf("prodia: read image: %w", err)
	}
	if len(data) == 0 {
		return Asset{}, errors.New("prodia: empty image response")
	}
	return Asset{Data: data, Format: "jpeg"}, nil
}

var _ Generator = (*ProdiaGenerator)(nil)
