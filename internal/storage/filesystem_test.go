package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStorePut(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir, "http://localhost:8080/static/")
	if err != nil {
		t.Fatal(err)
	}
	url, err := store.Put(context.Background(), "generated/img_abc.jpeg", []byte("payload"), "image/jpeg")
	if err != nil {
		t.Fatal(err)
	}
	if url != "http://localhost:8080/static/generated/img_abc.jpeg" {
		t.Fatalf("url = %q", url)
	}
	data, err := os.ReadFile(filepath.Join(dir, "generated", "img_abc.jpeg"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "payload" {
		t.Fatalf("data = %q", data)
	}
}

func TestFileStoreRejectsTraversal(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir, "http://localhost")
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"", "   ", "../escape.txt", "a/../../escape.txt", "."} {
		if _, err := store.Put(context.Background(), key, []byte("x"), ""); err == nil {
			t.Errorf("key %q accepted, want error", key)
		}
	}
}

func TestSanitizeKey(t *testing.T) {
	cases := map[string]string{
		"generated/a.png":   "generated/a.png",
		"/generated/a.png":  "generated/a.png",
		"./generated/a.png": "generated/a.png",
		"a//b.png":          "a/b.png",
	}
	for in, want := range cases {
		got, err := sanitizeKey(in)
		if err != nil {
			t.Errorf("sanitizeKey(%q) error: %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("sanitizeKey(%q) = %q, want %q", in, got, want)
		}
	}
}
