package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEditDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "abc", 0},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"color", "colour", 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EditDistance(tt.a, tt.b), "%q vs %q", tt.a, tt.b)
	}
}

func TestTextSimilarity(t *testing.T) {
	t.Run("identical strings score 1", func(t *testing.T) {
		assert.Equal(t, 1.0, TextSimilarity("Shape of You", "Shape of You"))
	})

	t.Run("case and punctuation insensitive", func(t *testing.T) {
		assert.Equal(t, 1.0, TextSimilarity("Don't Stop Me Now", "dont stop me now!"))
	})

	t.Run("empty input scores 0", func(t *testing.T) {
		assert.Equal(t, 0.0, TextSimilarity("", "Shape of You"))
		assert.Equal(t, 0.0, TextSimilarity("", ""))
	})

	t.Run("unrelated strings score near 0", func(t *testing.T) {
		assert.Equal(t, 0.0, TextSimilarity("Blinding Lights", "Mungaru Male"))
	})

	t.Run("symmetric", func(t *testing.T) {
		pairs := [][2]string{
			{"Shape of You", "Shape of You Remix"},
			{"The Weeknd", "Weeknd"},
			{"Tum Hi Ho", "Tum Hi Ho Reprise"},
		}
		for _, p := range pairs {
			assert.Equal(t, TextSimilarity(p[0], p[1]), TextSimilarity(p[1], p[0]), "%q vs %q", p[0], p[1])
		}
	})

	t.Run("bounded in 0 1", func(t *testing.T) {
		// Many cross-word substring hits could overshoot without the cap.
		s := TextSimilarity("aaa aaaa aaaaa", "aaa aaaa aaaaa aaaaaa")
		assert.LessOrEqual(t, s, 1.0)
		assert.GreaterOrEqual(t, s, 0.0)
	})

	t.Run("substring words count as full partial match", func(t *testing.T) {
		// "weeknd" contains no exact overlap with "the weeknd" minus "the",
		// but substring containment still scores it high.
		s := TextSimilarity("The Weeknd", "Weeknd")
		assert.Greater(t, s, 0.3)
	})

	t.Run("near spellings score via edit distance", func(t *testing.T) {
		// distance("color","colour")=1, within the gate for 5-letter words,
		// and neither contains the other after tokenizing.
		s := TextSimilarity("color field", "colour field")
		assert.Greater(t, s, 0.5)
	})

	t.Run("underscores are word characters", func(t *testing.T) {
		words := tokenize("snake_case Title")
		_, ok := words["snake_case"]
		assert.True(t, ok)
		_, ok = words["snakecase"]
		assert.False(t, ok)

		assert.Equal(t, 1.0, TextSimilarity("snake_case", "snake_case"))
	})

	t.Run("short words never fuzzy match", func(t *testing.T) {
		assert.Equal(t, 0.0, TextSimilarity("ab", "cd"))
	})

	t.Run("fuzzy overlap never beats exact match", func(t *testing.T) {
		exact := TextSimilarity("shape of you", "shape of you")
		fuzzy := TextSimilarity("shape of you", "shapes of yours")
		assert.Greater(t, exact, fuzzy)
	})
}
