package scripture

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNumericPrefixBook(t *testing.T) {
	ref, ok := Parse("1 Corinthians 13:4-7")
	assert.True(t, ok)
	assert.Equal(t, "1 Corinthians", ref.Book)
	assert.Equal(t, "13:4-7", ref.ChapterVerse)
}

func TestParseSingleWordBook(t *testing.T) {
	ref, ok := Parse("Genesis 1:1")
	assert.True(t, ok)
	assert.Equal(t, "Genesis", ref.Book)
	assert.Equal(t, "1:1", ref.ChapterVerse)
}

func TestParseMultiWordBook(t *testing.T) {
	ref, ok := Parse("Song of Solomon 2:1")
	assert.True(t, ok)
	assert.Equal(t, "Song of Solomon", ref.Book)
	assert.Equal(t, "2:1", ref.ChapterVerse)
}

func TestParseChapterOnly(t *testing.T) {
	ref, ok := Parse("Psalms 23")
	assert.True(t, ok)
	assert.Equal(t, "Psalms", ref.Book)
	assert.Equal(t, "23", ref.ChapterVerse)
}

func TestParseWithSurroundingSpace(t *testing.T) {
	ref, ok := Parse("  2 Timothy 3:16 ")
	assert.True(t, ok)
	assert.Equal(t, "2 Timothy", ref.Book)
	assert.Equal(t, "3:16", ref.ChapterVerse)
}

func TestParseRejectsNonReferences(t *testing.T) {
	for _, raw := range []string{"", "   ", "no chapter here", "13:4-7"} {
		_, ok := Parse(raw)
		assert.False(t, ok, "expected %q to be rejected", raw)
	}
}
