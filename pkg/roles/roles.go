// Package roles defines the canonical credit roles that arbitrary
// scheme-specific role strings are normalized into, and the synonym table
// used to classify them. The table is fixed data shared by every codec;
// it has no mutable state and is safe for concurrent use.
package roles

import "strings"

// CanonicalRole is one of the seven credit roles the metadata model
// normalizes into.
type CanonicalRole string

// String returns the string representation of a CanonicalRole.
func (r CanonicalRole) String() string {
	return string(r)
}

// Canonical credit roles.
const (
	Writer      CanonicalRole = "Writer"
	Penciller   CanonicalRole = "Penciller"
	Inker       CanonicalRole = "Inker"
	Colorist    CanonicalRole = "Colorist"
	Letterer    CanonicalRole = "Letterer"
	CoverArtist CanonicalRole = "Cover"
	Editor      CanonicalRole = "Editor"
)

// All lists every canonical role in a stable order.
var All = []CanonicalRole{Writer, Penciller, Inker, Colorist, Letterer, CoverArtist, Editor}

// synonyms maps each canonical role to the lower-cased role strings that
// count as that role. "artist" deliberately appears under both Penciller
// and Inker; classification fans out to both.
var synonyms = map[CanonicalRole][]string{
	Writer:      {"writer", "plotter", "scripter"},
	Penciller:   {"artist", "penciller", "penciler", "breakdowns"},
	Inker:       {"inker", "artist", "finishes"},
	Colorist:    {"colorist", "colourist", "colorer", "colourer"},
	Letterer:    {"letterer"},
	CoverArtist: {"cover", "covers", "coverartist", "cover artist"},
	Editor:      {"editor"},
}

// synonymSets is the lookup form of synonyms, built once at init.
var synonymSets = func() map[CanonicalRole]map[string]struct{} {
	sets := make(map[CanonicalRole]map[string]struct{}, len(synonyms))
	for role, names := range synonyms {
		set := make(map[string]struct{}, len(names))
		for _, name := range names {
			set[name] = struct{}{}
		}
		sets[role] = set
	}
	return sets
}()

// Classify returns every canonical role whose synonym set contains the
// case-folded input. The result may be empty ("Translator"), a single role,
// or several ("artist" matches both Penciller and Inker). Results follow
// the stable order of All.
func Classify(role string) []CanonicalRole {
	folded := strings.ToLower(strings.TrimSpace(role))
	if folded == "" {
		return nil
	}

	var matched []CanonicalRole
	for _, canonical := range All {
		if _, ok := synonymSets[canonical][folded]; ok {
			matched = append(matched, canonical)
		}
	}
	return matched
}

// Matches reports whether role is a synonym of canonical.
func Matches(canonical CanonicalRole, role string) bool {
	_, ok := synonymSets[canonical][strings.ToLower(strings.TrimSpace(role))]
	return ok
}

// ParseableRoleNames returns the union of all synonym strings across all
// canonical roles. Consumers use it to decide whether a credit's role
// participates in a given schema at all.
func ParseableRoleNames() map[string]struct{} {
	union := make(map[string]struct{})
	for _, set := range synonymSets {
		for name := range set {
			union[name] = struct{}{}
		}
	}
	return union
}
