package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"a", "b", 1},
		{"ab", "abc", 1},
		{"kitten", "sitting", 3},
		{"saturday", "sunday", 3},
		{"Hello", "hello", 1},
		{"héllo", "hello", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, Distance(tt.a, tt.b))
			assert.Equal(t, tt.want, Distance(tt.b, tt.a))
		})
	}
}

func TestSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, Similarity("", ""), 1e-9)
	assert.InDelta(t, 1.0, Similarity("abc", "abc"), 1e-9)
	assert.InDelta(t, 0.0, Similarity("abc", "xyz"), 1e-9)
	assert.InDelta(t, 0.75, Similarity("hand", "band"), 1e-9)
}

func TestNormalize(t *testing.T) {
	tests := map[string]string{
		"SpawnPoints":  "spawnpoints",
		"spawn_points": "spawnpoints",
		"Spawn Points": "spawnpoints",
		"spawn-points": "spawnpoints",
		"":             "",
	}

	for in, want := range tests {
		assert.Equal(t, want, Normalize(in), in)
	}
}

func TestClosest(t *testing.T) {
	names := []string{"Model", "SpawnPoints", "Feet"}

	got, ok := Closest("spawn_point", names)
	assert.True(t, ok)
	assert.Equal(t, "SpawnPoints", got)

	got, ok = Closest("Modle", names)
	assert.True(t, ok)
	assert.Equal(t, "Model", got)

	_, ok = Closest("Camera", names)
	assert.False(t, ok)

	_, ok = Closest("Model", nil)
	assert.False(t, ok)
}

func TestClosestTieKeepsFirst(t *testing.T) {
	got, ok := Closest("ab", []string{"ac", "ad"})
	assert.True(t, ok)
	assert.Equal(t, "ac", got)
}

func TestHint(t *testing.T) {
	assert.Equal(t, " (did you mean 'Weapon'?)", Hint("Wepon", []string{"Hand", "Weapon"}))
	assert.Empty(t, Hint("Zzzzzz", []string{"Hand"}))
}
