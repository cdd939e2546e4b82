package metadata

// Overlay merges a higher-priority record into this one. Incoming explicit
// values win; incoming absence never erases an existing value; an explicit
// empty string is a "clear this field" instruction, distinct from absence.
// The empty-string-clears rule applies to string-typed fields only;
// numeric and boolean fields are absent-or-value.
//
// Credits merge through overlayCredits (see credits.go). Tags and Pages are
// replaced wholesale when the incoming list is non-empty; an empty incoming
// list never replaces a non-empty one. That whole-list rule is a known
// limitation inherited from the schemes this model interoperates with, not
// a per-element merge waiting to happen.
//
// Overlay mutates the receiver. Callers that need both inputs intact should
// overlay onto a Copy.
func (md *GenericMetadata) Overlay(incoming *GenericMetadata) {
	if incoming == nil {
		return
	}

	// An overlay can only add data, never revert a record to empty.
	if !incoming.IsEmpty {
		md.IsEmpty = false
	}
	if incoming.TagOrigin != OriginUnknown {
		md.TagOrigin = incoming.TagOrigin
	}

	// Every scalar field gets an explicit rule here. A field added to
	// GenericMetadata without a line below is a bug; the coverage test in
	// overlay_test.go catches the omission.
	overlayString(&md.Series, incoming.Series)
	overlayString(&md.Issue, incoming.Issue)
	overlayString(&md.Title, incoming.Title)
	overlayInt(&md.IssueCount, incoming.IssueCount)
	overlayInt(&md.Volume, incoming.Volume)
	overlayInt(&md.VolumeCount, incoming.VolumeCount)
	overlayString(&md.AlternateSeries, incoming.AlternateSeries)
	overlayString(&md.AlternateNumber, incoming.AlternateNumber)
	overlayInt(&md.AlternateCount, incoming.AlternateCount)
	overlayString(&md.StoryArc, incoming.StoryArc)
	overlayString(&md.SeriesGroup, incoming.SeriesGroup)
	overlayString(&md.Publisher, incoming.Publisher)
	overlayString(&md.Imprint, incoming.Imprint)
	overlayInt(&md.Year, incoming.Year)
	overlayInt(&md.Month, incoming.Month)
	overlayInt(&md.Day, incoming.Day)
	overlayString(&md.Language, incoming.Language)
	overlayString(&md.Country, incoming.Country)
	overlayString(&md.Format, incoming.Format)
	overlayString(&md.Genre, incoming.Genre)
	overlayString(&md.Comments, incoming.Comments)
	overlayString(&md.Notes, incoming.Notes)
	overlayString(&md.Characters, incoming.Characters)
	overlayString(&md.Teams, incoming.Teams)
	overlayString(&md.Locations, incoming.Locations)
	overlayString(&md.ScanInfo, incoming.ScanInfo)
	overlayString(&md.WebLink, incoming.WebLink)
	overlayString(&md.MaturityRating, incoming.MaturityRating)
	overlayString(&md.Manga, incoming.Manga)
	overlayBool(&md.BlackAndWhite, incoming.BlackAndWhite)
	overlayInt(&md.CriticalRating, incoming.CriticalRating)
	overlayInt(&md.PageCount, incoming.PageCount)
	overlayString(&md.Price, incoming.Price)
	overlayString(&md.IsVersionOf, incoming.IsVersionOf)
	overlayString(&md.Rights, incoming.Rights)
	overlayString(&md.Identifier, incoming.Identifier)
	overlayString(&md.LastMark, incoming.LastMark)
	overlayString(&md.CoverImage, incoming.CoverImage)

	md.overlayCredits(incoming.Credits)

	if len(incoming.Tags) > 0 {
		md.Tags = make([]string, len(incoming.Tags))
		copy(md.Tags, incoming.Tags)
	}
	if len(incoming.Pages) > 0 {
		md.Pages = make([]Page, len(incoming.Pages))
		for i, p := range incoming.Pages {
			md.Pages[i] = p.Copy()
		}
	}
}

// Merged overlays incoming onto base without mutating either input and
// returns the combined record.
func Merged(base, incoming *GenericMetadata) *GenericMetadata {
	if base == nil {
		base = New()
	}
	merged := base.Copy()
	merged.Overlay(incoming)
	return merged
}

// overlayString applies the scalar rule for string fields: absent keeps the
// destination, empty string clears it, anything else replaces it.
func overlayString(dst **string, src *string) {
	if src == nil {
		return
	}
	if *src == "" {
		*dst = nil
		return
	}
	v := *src
	*dst = &v
}

// overlayInt applies the scalar rule for integer fields. There is no empty
// form for an integer, so the rule is absent-or-replace.
func overlayInt(dst **int, src *int) {
	if src == nil {
		return
	}
	v := *src
	*dst = &v
}

// overlayBool applies the scalar rule for boolean fields.
func overlayBool(dst **bool, src *bool) {
	if src == nil {
		return
	}
	v := *src
	*dst = &v
}
