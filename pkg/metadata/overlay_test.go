package metadata

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverlayReplacesWithExplicitValue(t *testing.T) {
	base := New()
	base.Series = Str("X")

	incoming := New()
	incoming.Series = Str("Y")
	incoming.IsEmpty = false

	base.Overlay(incoming)

	require.NotNil(t, base.Series)
	assert.Equal(t, "Y", *base.Series)
	assert.False(t, base.IsEmpty)
}

func TestOverlayClearsOnEmptyString(t *testing.T) {
	base := New()
	base.Series = Str("X")

	incoming := New()
	incoming.Series = Str("")

	base.Overlay(incoming)

	assert.Nil(t, base.Series)
}

func TestOverlayPreservesAbsence(t *testing.T) {
	base := New()
	base.Series = Str("X")
	base.Year = Int(1986)

	base.Overlay(New())

	require.NotNil(t, base.Series)
	assert.Equal(t, "X", *base.Series)
	require.NotNil(t, base.Year)
	assert.Equal(t, 1986, *base.Year)
}

func TestOverlayIsEmptyOnlyGoesFalse(t *testing.T) {
	base := New()
	base.IsEmpty = false

	incoming := New() // still empty

	base.Overlay(incoming)
	assert.False(t, base.IsEmpty, "an overlay can never revert a record to empty")
}

func TestOverlayTagsWholeListReplacement(t *testing.T) {
	base := New()
	base.Tags = []string{"superhero", "classic"}

	// Empty incoming list never replaces a non-empty base list.
	base.Overlay(New())
	assert.Equal(t, []string{"superhero", "classic"}, base.Tags)

	incoming := New()
	incoming.Tags = []string{"noir"}
	base.Overlay(incoming)
	assert.Equal(t, []string{"noir"}, base.Tags)
}

func TestOverlayPagesWholeListReplacement(t *testing.T) {
	base := New()
	base.SetDefaultPageList(3)

	base.Overlay(New())
	assert.Len(t, base.Pages, 3)

	incoming := New()
	incoming.Pages = []Page{{Image: "0", Type: PageFrontCover}}
	base.Overlay(incoming)
	assert.Len(t, base.Pages, 1)
}

func TestOverlayDoesNotAliasIncomingLists(t *testing.T) {
	base := New()

	incoming := New()
	incoming.Tags = []string{"a"}
	incoming.Pages = []Page{{Image: "0", Extra: map[string]string{"Bookmark": "x"}}}

	base.Overlay(incoming)

	incoming.Tags[0] = "mutated"
	incoming.Pages[0].Extra["Bookmark"] = "mutated"

	assert.Equal(t, "a", base.Tags[0])
	assert.Equal(t, "x", base.Pages[0].Extra["Bookmark"])
}

func TestMergedLeavesInputsIntact(t *testing.T) {
	base := New()
	base.Series = Str("X")
	base.AddCredit("Bob", "Writer", false)

	incoming := New()
	incoming.Series = Str("Y")

	merged := Merged(base, incoming)

	assert.Equal(t, "Y", *merged.Series)
	assert.Equal(t, "X", *base.Series, "Merged must not mutate base")
	assert.Nil(t, incoming.Credits, "Merged must not mutate incoming")
}

// TestOverlayCoversEveryScalarField guards the explicit field table in
// Overlay: it sets every pointer field on an incoming record via reflection
// and asserts each one lands on the merged result. A field added to
// GenericMetadata without an overlay rule fails here.
func TestOverlayCoversEveryScalarField(t *testing.T) {
	incoming := New()
	incoming.IsEmpty = false

	v := reflect.ValueOf(incoming).Elem()
	typ := v.Type()

	var scalarFields []string
	for i := 0; i < typ.NumField(); i++ {
		field := v.Field(i)
		if field.Kind() != reflect.Ptr {
			continue
		}
		scalarFields = append(scalarFields, typ.Field(i).Name)

		switch field.Type().Elem().Kind() {
		case reflect.String:
			s := "probe"
			field.Set(reflect.ValueOf(&s))
		case reflect.Int:
			n := 7
			field.Set(reflect.ValueOf(&n))
		case reflect.Bool:
			b := true
			field.Set(reflect.ValueOf(&b))
		default:
			t.Fatalf("unhandled scalar field kind for %s", typ.Field(i).Name)
		}
	}
	require.NotEmpty(t, scalarFields)

	base := New()
	base.Overlay(incoming)

	merged := reflect.ValueOf(base).Elem()
	for _, name := range scalarFields {
		assert.False(t, merged.FieldByName(name).IsNil(),
			"field %s was set on incoming but did not survive Overlay; missing from the field table?", name)
	}
}
