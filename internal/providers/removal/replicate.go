package removal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"designforge/internal/domain"
)

const (
	replicateDefaultTimeout = 120 * time.Second
	replicateDefaultBaseURL = "https://api.replicate.com/v1"
	// replicateDefaultVersion pins the rembg model used for background removal.
	replicateDefaultVersion = "4067ee2a58f6c161d434a9c077cfa012820b8e076efa2772aa171e26557da919"
)

// ReplicateOptions configures the Replicate background-removal client.
type ReplicateOptions struct {
	Token      string
	BaseURL    string
	Version    string
	HTTPClient *http.Client
}

// ReplicateRemover runs a background-removal prediction synchronously via
// Replicate's blocking mode.
type ReplicateRemover struct {
	token   string
	baseURL string
	version string
	client  *http.Client
}

type replicatePredictionRequest struct {
	Version string         `json:"version"`
	Input   map[string]any `json:"input"`
}

type replicatePredictionResponse struct {
	Status string          `json:"status"`
	Output json.RawMessage `json:"output"`
	Error  string          `json:"error"`
}

func NewReplicateRemover(opts ReplicateOptions) (*ReplicateRemover, error) {
	if strings.TrimSpace(opts.Token) == "" {
		return nil, errors.New("replicate token is required")
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = replicateDefaultBaseURL
	}
	version := strings.TrimSpace(opts.Version)
	if version == "" {
		version = replicateDefaultVersion
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: replicateDefaultTimeout}
	}
	return &ReplicateRemover{
		token:   strings.TrimSpace(opts.Token),
		baseURL: baseURL,
		version: version,
		client:  client,
	}, nil
}

func (r *ReplicateRemover) Remove(ctx context.Context, imageURL string) (string, error) {
	if strings.TrimSpace(imageURL) == "" {
		return "", fmt.Errorf("%w: image url is required", domain.ErrBackgroundRemoval)
	}
	payload := replicatePredictionRequest{
		Version: r.version,
		Input:   map[string]any{"image": imageURL},
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return "", fmt.Errorf("%w: encode request: %v", domain.ErrBackgroundRemoval, err)
	}
	endpoint := fmt.Sprintf("%s/predictions", r.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", domain.ErrBackgroundRemoval, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+r.token)
	// Block until the prediction finishes instead of polling.
	req.Header.Set("Prefer", "wait")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: request failed: %v", domain.ErrBackgroundRemoval, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: unexpected status %d", domain.ErrBackgroundRemoval, resp.StatusCode)
	}
	var out replicatePredictionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", domain.ErrBackgroundRemoval, err)
	}
	if out.Error != "" {
		return "", fmt.Errorf("%w: %s", domain.ErrBackgroundRemoval, out.Error)
	}
	url := parseOutputURL(out.Output)
	if url == "" {
		return "", fmt.Errorf("%w: prediction returned no output (status %s)", domain.ErrBackgroundRemoval, out.Status)
	}
	return url, nil
}

// parseOutputURL accepts the two output shapes Replicate models use: a bare
// URL string or an array of URL strings.
func parseOutputURL(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return single
	}
	var many []string
	if err := json.Unmarshal(raw, &many); err == nil && len(many) > 0 {
		return many[0]
	}
	return ""
}

var _ Remover = (*ReplicateRemover)(nil)
