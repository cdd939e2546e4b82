package roles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		role string
		want []CanonicalRole
	}{
		{"exact writer", "writer", []CanonicalRole{Writer}},
		{"case folded", "WRITER", []CanonicalRole{Writer}},
		{"plotter is a writer", "Plotter", []CanonicalRole{Writer}},
		{"artist fans out", "artist", []CanonicalRole{Penciller, Inker}},
		{"US spelling", "penciler", []CanonicalRole{Penciller}},
		{"UK colourist", "Colourist", []CanonicalRole{Colorist}},
		{"two word cover artist", "cover artist", []CanonicalRole{CoverArtist}},
		{"surrounding whitespace", "  editor ", []CanonicalRole{Editor}},
		{"unknown role", "Translator", nil},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.role))
		})
	}
}

func TestMatches(t *testing.T) {
	assert.True(t, Matches(Inker, "Finishes"))
	assert.True(t, Matches(Penciller, "breakdowns"))
	assert.False(t, Matches(Letterer, "artist"))
}

func TestParseableRoleNames(t *testing.T) {
	names := ParseableRoleNames()

	// "artist" belongs to two roles but appears once in the union.
	assert.Contains(t, names, "artist")
	assert.Contains(t, names, "cover artist")
	assert.NotContains(t, names, "translator")

	// 3+4+3+4+1+4+1 synonyms with one duplicate ("artist").
	assert.Len(t, names, 19)
}
