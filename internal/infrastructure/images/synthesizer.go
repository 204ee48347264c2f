// Package images derives display image URLs for generated recipes from an
// external stock-photo service. No provider call is involved; the service
// returns an arbitrary food-themed photo for a numeric lock value.
package images

import (
	"fmt"
	"hash/fnv"
)

const (
	defaultBaseURL = "https://loremflickr.com"
	defaultWidth   = 800
	defaultHeight  = 600
	defaultTags    = "food,meal,cooked,dish"
)

// Synthesizer builds stock-photo URLs for recipe titles. Derivation is a
// pure function of title and seed, so the same recipe always maps to the
// same photo within a configuration.
type Synthesizer struct {
	baseURL string
	width   int
	height  int
	tags    string
}

// Config carries the stock-photo service settings. Zero values fall back
// to the defaults above.
type Config struct {
	BaseURL string
	Width   int
	Height  int
	Tags    string
}

// NewSynthesizer creates a Synthesizer from cfg.
func NewSynthesizer(cfg Config) *Synthesizer {
	s := &Synthesizer{
		baseURL: cfg.BaseURL,
		width:   cfg.Width,
		height:  cfg.Height,
		tags:    cfg.Tags,
	}
	if s.baseURL == "" {
		s.baseURL = defaultBaseURL
	}
	if s.width <= 0 {
		s.width = defaultWidth
	}
	if s.height <= 0 {
		s.height = defaultHeight
	}
	if s.tags == "" {
		s.tags = defaultTags
	}
	return s
}

// URLFor returns the stock-photo URL for a content title and stable seed
// (the recipe id or a positional index). Applied to every newly fetched
// recipe; transform results keep their prior image instead.
func (s *Synthesizer) URLFor(title, seed string) string {
	h := fnv.New32a()
	h.Write([]byte(title))
	h.Write([]byte{0})
	h.Write([]byte(seed))
	lock := h.Sum32() % 1000
	return fmt.Sprintf("%s/%d/%d/%s/all?lock=%d", s.baseURL, s.width, s.height, s.tags, lock)
}
