package removal

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"designforge/internal/domain"
)

func TestReplicateRemove(t *testing.T) {
	var captured replicatePredictionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/predictions" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("Prefer"); got != "wait" {
			t.Errorf("prefer = %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatal(err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": "succeeded",
			"output": "https://replicate.delivery/out.png",
		})
	}))
	defer srv.Close()

	remover, err := NewReplicateRemover(ReplicateOptions{Token: "tok", BaseURL: srv.URL})
	if err != nil {
		t.Fatal(err)
	}
	url, err := remover.Remove(context.Background(), "https://assets.example/in.png")
	if err != nil {
		t.Fatal(err)
	}
	if url != "https://replicate.delivery/out.png" {
		t.Fatalf("url = %q", url)
	}
	if captured.Input["image"] != "https://assets.example/in.png" {
		t.Errorf("input image = %v", captured.Input["image"])
	}
}

func TestReplicateRemoveArrayOutput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": "succeeded",
			"output": []string{"https://replicate.delivery/first.png", "https://replicate.delivery/second.png"},
		})
	}))
	defer srv.Close()

	remover, err := NewReplicateRemover(ReplicateOptions{Token: "tok", BaseURL: srv.URL})
	if err != nil {
		t.Fatal(err)
	}
	url, err := remover.Remove(context.Background(), "https://assets.example/in.png")
	if err != nil {
		t.Fatal(err)
	}
	if url != "https://replicate.delivery/first.png" {
		t.Fatalf("url = %q", url)
	}
}

func TestReplicateRemoveFailure(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"error field": func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{"status": "failed", "error": "cuda out of memory"})
		},
		"no output": func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{"status": "failed"})
		},
		"http error": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		},
	}
	for name, handler := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(handler)
			defer srv.Close()
			remover, err := NewReplicateRemover(ReplicateOptions{Token: "tok", BaseURL: srv.URL})
			if err != nil {
				t.Fatal(err)
			}
			_, err = remover.Remove(context.Background(), "https://assets.example/in.png")
			if !errors.Is(err, domain.ErrBackgroundRemoval) {
				t.Fatalf("err = %v, want ErrBackgroundRemoval", err)
			}
		})
	}
}

func TestReplicateRemoveEmptyURL(t *testing.T) {
	remover, err := NewReplicateRemover(ReplicateOptions{Token: "tok"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := remover.Remove(context.Background(), "  "); !errors.Is(err, domain.ErrBackgroundRemoval) {
		t.Fatalf("err = %v, want ErrBackgroundRemoval", err)
	}
}
