package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggestFindsCloseCandidate(t *testing.T) {
	names := []string{"pip", "npm", "cargo"}
	got, ok := Suggest("pi", names, 0.5)
	assert.True(t, ok)
	assert.Equal(t, "pip", got)
}

func TestSuggestNoCandidatesReturnsFalse(t *testing.T) {
	_, ok := Suggest("xyz", nil, 0.5)
	assert.False(t, ok)
}

func TestSuggestEmptyInputReturnsFalse(t *testing.T) {
	_, ok := Suggest("", []string{"pip"}, 0.5)
	assert.False(t, ok)
}
