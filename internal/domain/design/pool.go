package design

import (
	"encoding/json"
	"sort"
	"sync"
)

// PoolImage is one resolved image the session can reuse in later generations.
type PoolImage struct {
	ID          string `json:"id"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

// ImagePool is the session-scoped registry of resolved images. It only grows
// during a resolution pass; removal is an explicit user action. Appends may
// happen concurrently from resolver goroutines.
type ImagePool struct {
	mu     sync.RWMutex
	images map[string]PoolImage
}

func NewImagePool() *ImagePool {
	return &ImagePool{images: make(map[string]PoolImage)}
}

// Add inserts or replaces an image by id.
func (p *ImagePool) Add(img PoolImage) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.images == nil {
		p.images = make(map[string]PoolImage)
	}
	p.images[img.ID] = img
}

// Get looks up an image by id.
func (p *ImagePool) Get(id string) (PoolImage, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	img, ok := p.images[id]
	return img, ok
}

// Remove deletes an image by id and reports whether it existed.
func (p *ImagePool) Remove(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.images[id]
	delete(p.images, id)
	return ok
}

// Len returns the number of pooled images.
func (p *ImagePool) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.images)
}

// List returns all pooled images sorted by id for stable output.
func (p *ImagePool) List() []PoolImage {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]PoolImage, 0, len(p.images))
	for _, img := range p.images {
		out = append(out, img)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// MarshalJSON serializes the pool as a sorted array so it round-trips
// deterministically between requests.
func (p *ImagePool) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.List())
}

func (p *ImagePool) UnmarshalJSON(data []byte) error {
	var images []PoolImage
	if err := json.Unmarshal(data, &images); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.images = make(map[string]PoolImage, len(images))
	for _, img := range images {
		p.images[img.ID] = img
	}
	return nil
}
