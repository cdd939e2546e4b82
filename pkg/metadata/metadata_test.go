package metadata

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIsEmpty(t *testing.T) {
	md := New()

	assert.True(t, md.IsEmpty)
	assert.Equal(t, OriginUnknown, md.TagOrigin)
	assert.Equal(t, "No metadata", md.String())
}

func TestCopyIsDeep(t *testing.T) {
	md := New()
	md.IsEmpty = false
	md.Series = Str("Watchmen")
	md.Year = Int(1986)
	md.AddCredit("Alan Moore", "Writer", true)
	md.Tags = []string{"classic"}
	md.Pages = []Page{{Image: "0", Extra: map[string]string{"Bookmark": "x"}}}

	dup := md.Copy()

	*dup.Series = "Mutated"
	*dup.Year = 2000
	dup.Credits[0].Person = "Someone Else"
	dup.Tags[0] = "mutated"
	dup.Pages[0].Extra["Bookmark"] = "mutated"

	assert.Equal(t, "Watchmen", *md.Series)
	assert.Equal(t, 1986, *md.Year)
	assert.Equal(t, "Alan Moore", md.Credits[0].Person)
	assert.Equal(t, "classic", md.Tags[0])
	assert.Equal(t, "x", md.Pages[0].Extra["Bookmark"])
}

func TestLanguageName(t *testing.T) {
	md := New()
	assert.Equal(t, "", md.LanguageName())

	md.Language = Str("de")
	assert.Equal(t, "German", md.LanguageName())

	md.Language = Str("zz-not-a-language")
	assert.Equal(t, "", md.LanguageName())
}

func TestStringSummary(t *testing.T) {
	md := New()
	md.IsEmpty = false
	md.Series = Str("Watchmen")
	md.Issue = Str("1")
	md.Year = Int(1986)
	md.AddCredit("Alan Moore", "Writer", true)
	md.AddCredit("Dave Gibbons", "Penciller", false)
	md.Tags = []string{"classic", "superhero"}

	out := md.String()

	assert.Contains(t, out, "series:")
	assert.Contains(t, out, "Watchmen")
	assert.Contains(t, out, "Writer: Alan Moore [P]")
	assert.Contains(t, out, "Penciller: Dave Gibbons")
	assert.Contains(t, out, "classic, superhero")

	// Blank fields never render.
	assert.NotContains(t, out, "imprint")
}

func TestYAMLRoundTrip(t *testing.T) {
	md := New()
	md.IsEmpty = false
	md.Series = Str("Watchmen")
	md.Issue = Str("1")
	md.Year = Int(1986)
	md.BlackAndWhite = Bool(true)
	md.AddCredit("Alan Moore", "Writer", true)
	md.Pages = []Page{{Image: "0", Type: PageFrontCover, Extra: map[string]string{"Bookmark": "x"}}}
	md.Price = Str("1.50") // CoMet extras survive the sidecar form

	data, err := md.YAML()
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "series: Watchmen"))

	back, err := FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, md, back)
}

func TestFromYAMLMalformed(t *testing.T) {
	_, err := FromYAML([]byte("series: [unterminated"))
	assert.Error(t, err)
}
