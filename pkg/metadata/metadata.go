// Package metadata defines the canonical comic-book metadata record that
// every tagging scheme is translated into and out of. The goal of this
// record is to hold ALL the data that might come from the various tagging
// schemes and databases, making conversion possible, however lossy it
// might be.
//
// Scalar fields are pointers so that "absent" and "empty" stay distinct:
// the overlay merge treats an absent field as "no opinion" and an explicit
// empty string as "clear this field".
package metadata

import (
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// TagOrigin marks which tagging scheme produced a record.
type TagOrigin string

// String returns the string representation of a TagOrigin.
func (o TagOrigin) String() string {
	return string(o)
}

// Known tag origins.
const (
	OriginUnknown   TagOrigin = ""
	OriginComicInfo TagOrigin = "cix"
	OriginCBI       TagOrigin = "cbi"
	OriginCoMet     TagOrigin = "comet"
	OriginFilename  TagOrigin = "filename"
)

// Manga field values, as defined by the ComicInfo scheme.
const (
	MangaYes            = "Yes"
	MangaYesRightToLeft = "YesAndRightToLeft"
	MangaNo             = "No"
)

// GenericMetadata is the canonical metadata record for one comic issue.
//
// A fresh record is empty (IsEmpty true); source adapters populate it field
// by field, and Overlay folds records from several sources into one.
type GenericMetadata struct {
	// IsEmpty is true only for a record that has never had a field set.
	IsEmpty bool `json:"is_empty" yaml:"is_empty"`
	// TagOrigin marks the scheme this record was decoded from, if any.
	TagOrigin TagOrigin `json:"tag_origin,omitempty" yaml:"tag_origin,omitempty"`

	// Identity / descriptive
	Series          *string `json:"series,omitempty" yaml:"series,omitempty"`
	Issue           *string `json:"issue,omitempty" yaml:"issue,omitempty"` // keeps non-numeric forms: "12.1", "Annual"
	Title           *string `json:"title,omitempty" yaml:"title,omitempty"`
	IssueCount      *int    `json:"issue_count,omitempty" yaml:"issue_count,omitempty"`
	Volume          *int    `json:"volume,omitempty" yaml:"volume,omitempty"`
	VolumeCount     *int    `json:"volume_count,omitempty" yaml:"volume_count,omitempty"`
	AlternateSeries *string `json:"alternate_series,omitempty" yaml:"alternate_series,omitempty"`
	AlternateNumber *string `json:"alternate_number,omitempty" yaml:"alternate_number,omitempty"`
	AlternateCount  *int    `json:"alternate_count,omitempty" yaml:"alternate_count,omitempty"`
	StoryArc        *string `json:"story_arc,omitempty" yaml:"story_arc,omitempty"`
	SeriesGroup     *string `json:"series_group,omitempty" yaml:"series_group,omitempty"`

	// Publication
	Publisher *string `json:"publisher,omitempty" yaml:"publisher,omitempty"`
	Imprint   *string `json:"imprint,omitempty" yaml:"imprint,omitempty"`
	Year      *int    `json:"year,omitempty" yaml:"year,omitempty"`
	Month     *int    `json:"month,omitempty" yaml:"month,omitempty"`
	Day       *int    `json:"day,omitempty" yaml:"day,omitempty"`
	Language  *string `json:"language,omitempty" yaml:"language,omitempty"` // two-letter ISO code
	Country   *string `json:"country,omitempty" yaml:"country,omitempty"`
	Format    *string `json:"format,omitempty" yaml:"format,omitempty"`
	Genre     *string `json:"genre,omitempty" yaml:"genre,omitempty"`

	// Content
	Comments       *string `json:"comments,omitempty" yaml:"comments,omitempty"` // used the same way as Summary in CIX
	Notes          *string `json:"notes,omitempty" yaml:"notes,omitempty"`
	Characters     *string `json:"characters,omitempty" yaml:"characters,omitempty"`
	Teams          *string `json:"teams,omitempty" yaml:"teams,omitempty"`
	Locations      *string `json:"locations,omitempty" yaml:"locations,omitempty"`
	ScanInfo       *string `json:"scan_info,omitempty" yaml:"scan_info,omitempty"`
	WebLink        *string `json:"web_link,omitempty" yaml:"web_link,omitempty"`
	MaturityRating *string `json:"maturity_rating,omitempty" yaml:"maturity_rating,omitempty"`
	Manga          *string `json:"manga,omitempty" yaml:"manga,omitempty"` // "", "Yes", "YesAndRightToLeft", "No"
	BlackAndWhite  *bool   `json:"black_and_white,omitempty" yaml:"black_and_white,omitempty"`
	CriticalRating *int    `json:"critical_rating,omitempty" yaml:"critical_rating,omitempty"`
	PageCount      *int    `json:"page_count,omitempty" yaml:"page_count,omitempty"`

	// Collections
	Credits []Credit `json:"credits,omitempty" yaml:"credits,omitempty"`
	Tags    []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Pages   []Page   `json:"pages,omitempty" yaml:"pages,omitempty"`

	// CoMet-only items, carried for completeness
	Price       *string `json:"price,omitempty" yaml:"price,omitempty"`
	IsVersionOf *string `json:"is_version_of,omitempty" yaml:"is_version_of,omitempty"`
	Rights      *string `json:"rights,omitempty" yaml:"rights,omitempty"`
	Identifier  *string `json:"identifier,omitempty" yaml:"identifier,omitempty"`
	LastMark    *string `json:"last_mark,omitempty" yaml:"last_mark,omitempty"`
	CoverImage  *string `json:"cover_image,omitempty" yaml:"cover_image,omitempty"`
}

// New creates a fresh, empty metadata record.
func New() *GenericMetadata {
	return &GenericMetadata{IsEmpty: true}
}

// Str returns a pointer to s, for populating optional string fields.
func Str(s string) *string {
	return &s
}

// Int returns a pointer to n, for populating optional integer fields.
func Int(n int) *int {
	return &n
}

// Bool returns a pointer to b, for populating optional boolean fields.
func Bool(b bool) *bool {
	return &b
}

// LanguageName returns the English display name of the record's two-letter
// ISO language code ("de" -> "German"). It returns the empty string when
// the field is absent or the code is not a recognized language.
func (md *GenericMetadata) LanguageName() string {
	if md.Language == nil || *md.Language == "" {
		return ""
	}
	tag, err := language.Parse(*md.Language)
	if err != nil {
		return ""
	}
	return display.English.Languages().Name(tag)
}

// Copy returns a deep copy of the record. The copy owns its own credit,
// tag, and page storage, so mutating it never aliases the original.
func (md *GenericMetadata) Copy() *GenericMetadata {
	dup := *md

	dup.Series = copyString(md.Series)
	dup.Issue = copyString(md.Issue)
	dup.Title = copyString(md.Title)
	dup.IssueCount = copyInt(md.IssueCount)
	dup.Volume = copyInt(md.Volume)
	dup.VolumeCount = copyInt(md.VolumeCount)
	dup.AlternateSeries = copyString(md.AlternateSeries)
	dup.AlternateNumber = copyString(md.AlternateNumber)
	dup.AlternateCount = copyInt(md.AlternateCount)
	dup.StoryArc = copyString(md.StoryArc)
	dup.SeriesGroup = copyString(md.SeriesGroup)
	dup.Publisher = copyString(md.Publisher)
	dup.Imprint = copyString(md.Imprint)
	dup.Year = copyInt(md.Year)
	dup.Month = copyInt(md.Month)
	dup.Day = copyInt(md.Day)
	dup.Language = copyString(md.Language)
	dup.Country = copyString(md.Country)
	dup.Format = copyString(md.Format)
	dup.Genre = copyString(md.Genre)
	dup.Comments = copyString(md.Comments)
	dup.Notes = copyString(md.Notes)
	dup.Characters = copyString(md.Characters)
	dup.Teams = copyString(md.Teams)
	dup.Locations = copyString(md.Locations)
	dup.ScanInfo = copyString(md.ScanInfo)
	dup.WebLink = copyString(md.WebLink)
	dup.MaturityRating = copyString(md.MaturityRating)
	dup.Manga = copyString(md.Manga)
	dup.BlackAndWhite = copyBool(md.BlackAndWhite)
	dup.CriticalRating = copyInt(md.CriticalRating)
	dup.PageCount = copyInt(md.PageCount)
	dup.Price = copyString(md.Price)
	dup.IsVersionOf = copyString(md.IsVersionOf)
	dup.Rights = copyString(md.Rights)
	dup.Identifier = copyString(md.Identifier)
	dup.LastMark = copyString(md.LastMark)
	dup.CoverImage = copyString(md.CoverImage)

	if md.Credits != nil {
		dup.Credits = make([]Credit, len(md.Credits))
		copy(dup.Credits, md.Credits)
	}
	if md.Tags != nil {
		dup.Tags = make([]string, len(md.Tags))
		copy(dup.Tags, md.Tags)
	}
	if md.Pages != nil {
		dup.Pages = make([]Page, len(md.Pages))
		for i, p := range md.Pages {
			dup.Pages[i] = p.Copy()
		}
	}

	return &dup
}

func copyString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func copyInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func copyBool(p *bool) *bool {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
