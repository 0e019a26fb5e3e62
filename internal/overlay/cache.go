package overlay

import "image"

// ImageCache keeps rendered panel images keyed by content variant. The
// cache is invalidated wholesale when settings change, since colors
// and fonts feed into every image.
type ImageCache struct {
	images map[string]*image.RGBA
}

// NewImageCache creates an empty cache.
func NewImageCache() *ImageCache {
	return &ImageCache{images: make(map[string]*image.RGBA)}
}

// Get returns the cached image for a key.
func (c *ImageCache) Get(key string) (*image.RGBA, bool) {
	img, ok := c.images[key]
	return img, ok
}

// Put stores a rendered image.
func (c *ImageCache) Put(key string, img *image.RGBA) {
	c.images[key] = img
}

// Clear drops every cached image.
func (c *ImageCache) Clear() {
	c.images = make(map[string]*image.RGBA)
}
