package image

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestProdiaGenerate(t *testing.T) {
	var captured prodiaJobRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/job" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("authorization = %q", got)
		}
		if got := r.Header.Get("Accept"); got != "image/jpeg" {
			t.Errorf("accept = %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatal(err)
		}
		_, _ = w.Write([]byte{0xff, 0xd8, 0xff})
	}))
	defer srv.Close()

	gen, err := NewProdiaGenerator(ProdiaOptions{Token: "tok", BaseURL: srv.URL})
	if err != nil {
		t.Fatal(err)
	}
	asset, err := gen.Generate(context.Background(), GenerateRequest{
		Description: "a red balloon",
		Width:       640,
		Height:      480,
	})
	if err != nil {
		t.Fatal(err)
	}
	if asset.Format != "jpeg" || len(asset.Data) != 3 {
		t.Fatalf("asset = %+v", asset)
	}
	if captured.Type != prodiaDefaultJobType {
		t.Errorf("job type = %q", captured.Type)
	}
	if captured.Config.Width != 640 || captured.Config.Height != 480 {
		t.Errorf("dimensions = %dx%d", captured.Config.Width, captured.Config.Height)
	}
	if captured.Config.NegativePrompt != DefaultNegativePrompt {
		t.Errorf("negative prompt = %q", captured.Config.NegativePrompt)
	}
}

func TestProdiaGenerateErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	gen, err := NewProdiaGenerator(ProdiaOptions{Token: "tok", BaseURL: srv.URL})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := gen.Generate(context.Background(), GenerateRequest{Description: "x", Width: 1, Height: 1}); err == nil {
		t.Fatal("expected error on 429")
	}
}

func TestNewProdiaGeneratorRequiresToken(t *testing.T) {
	if _, err := NewProdiaGenerator(ProdiaOptions{}); err == nil {
		t.Fatal("expected error without token")
	}
}
