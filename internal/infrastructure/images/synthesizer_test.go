package images

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURLForDeterministic(t *testing.T) {
	s := NewSynthesizer(Config{})

	a := s.URLFor("Paella valenciana", "r-1")
	b := s.URLFor("Paella valenciana", "r-1")
	assert.Equal(t, a, b, "same title and seed must map to the same photo")

	c := s.URLFor("Paella valenciana", "r-2")
	assert.NotEqual(t, a, c, "a different seed should pick a different photo")
}

func TestURLForShape(t *testing.T) {
	s := NewSynthesizer(Config{})
	url := s.URLFor("Tarta de queso", "0")

	assert.True(t, strings.HasPrefix(url, "https://loremflickr.com/800/600/food,meal,cooked,dish/all?lock="))

	lockStr := url[strings.Index(url, "lock=")+len("lock="):]
	lock, err := strconv.Atoi(lockStr)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, lock, 0)
	assert.Less(t, lock, 1000)
}

func TestSynthesizerConfig(t *testing.T) {
	s := NewSynthesizer(Config{
		BaseURL: "https://photos.example.com",
		Width:   400,
		Height:  300,
		Tags:    "plato",
	})
	url := s.URLFor("Gazpacho", "g")
	assert.True(t, strings.HasPrefix(url, "https://photos.example.com/400/300/plato/all?lock="), url)
}

func TestURLForSeparatesTitleAndSeed(t *testing.T) {
	s := NewSynthesizer(Config{})
	// "ab"+"c" and "a"+"bc" must not collide into the same hash input.
	assert.NotEqual(t,
		fmt.Sprint(s.URLFor("ab", "c")),
		fmt.Sprint(s.URLFor("a", "bc")))
}
