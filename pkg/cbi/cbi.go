// Package cbi converts between the canonical metadata record and the
// ComicBookLover (ComicBookInfo) JSON tagging scheme. CBI lives in a zip
// archive's comment rather than a file entry, but this codec only deals in
// bytes; placement is the archive layer's concern.
package cbi

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/inkdex/comicmeta/pkg/errors"
	"github.com/inkdex/comicmeta/pkg/metadata"
)

// FormatName identifies this scheme in errors and logs.
const FormatName = "cbi"

// envelopeKey is the JSON key the payload hangs under; its presence is what
// makes a JSON object a CBI document.
const envelopeKey = "ComicBookInfo/1.0"

// appID is written into every document this codec generates.
const appID = "comicmeta/1.0"

// now is swapped out by tests that need deterministic output.
var now = time.Now

type credit struct {
	Person  string `json:"person"`
	Role    string `json:"role"`
	Primary bool   `json:"primary,omitempty"`
}

type payload struct {
	Series           *string  `json:"series,omitempty"`
	Title            *string  `json:"title,omitempty"`
	Issue            *string  `json:"issue,omitempty"`
	NumberOfIssues   *int     `json:"numberOfIssues,omitempty"`
	Volume           *int     `json:"volume,omitempty"`
	NumberOfVolumes  *int     `json:"numberOfVolumes,omitempty"`
	Publisher        *string  `json:"publisher,omitempty"`
	PublicationYear  *int     `json:"publicationYear,omitempty"`
	PublicationMonth *int     `json:"publicationMonth,omitempty"`
	Comments         *string  `json:"comments,omitempty"`
	Genre            *string  `json:"genre,omitempty"`
	Language         *string  `json:"language,omitempty"` // two-letter ISO code, kept lossless
	Country          *string  `json:"country,omitempty"`
	Rating           *int     `json:"rating,omitempty"`
	Credits          []credit `json:"credits,omitempty"`
	Tags             []string `json:"tags,omitempty"`
}

type document struct {
	AppID        string          `json:"appID"`
	LastModified string          `json:"lastModified"`
	Payload      json.RawMessage `json:"ComicBookInfo/1.0"`
}

// Encode renders a canonical metadata record as a CBI JSON document.
// Encode never mutates md.
func Encode(md *metadata.GenericMetadata) ([]byte, error) {
	p := payload{
		Series:           md.Series,
		Title:            md.Title,
		Issue:            md.Issue,
		NumberOfIssues:   md.IssueCount,
		Volume:           md.Volume,
		NumberOfVolumes:  md.VolumeCount,
		Publisher:        md.Publisher,
		PublicationYear:  md.Year,
		PublicationMonth: md.Month,
		Comments:         md.Comments,
		Genre:            md.Genre,
		Language:         md.Language,
		Country:          md.Country,
		Rating:           md.CriticalRating,
		Tags:             md.Tags,
	}
	for _, c := range md.Credits {
		p.Credits = append(p.Credits, credit{Person: c.Person, Role: c.Role, Primary: c.Primary})
	}

	rawPayload, err := json.Marshal(p)
	if err != nil {
		return nil, errors.NewFormatError(FormatName, "marshaling payload", err)
	}

	doc := document{
		AppID:        appID,
		LastModified: now().UTC().Format("2006-01-02 15:04:05 +0000"),
		Payload:      rawPayload,
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, errors.NewFormatError(FormatName, "marshaling document", err)
	}
	return out, nil
}

// Decode parses a CBI JSON document into a canonical metadata record. It
// returns a FormatError when the bytes are not valid JSON or the envelope
// key is missing. Field values of unexpected JSON types are skipped, not
// errors, matching the leniency of the XML codecs.
func Decode(data []byte) (*metadata.GenericMetadata, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.NewFormatError(FormatName, "malformed JSON", err)
	}

	rawPayload, ok := doc[envelopeKey]
	if !ok {
		return nil, errors.NewFormatError(FormatName, "missing "+envelopeKey+" envelope", nil)
	}

	// The wild contains CBI with numbers where strings belong and vice
	// versa, so the payload is walked dynamically rather than unmarshaled
	// into the strict struct used for encoding.
	var fields map[string]any
	if err := json.Unmarshal(rawPayload, &fields); err != nil {
		return nil, errors.NewFormatError(FormatName, "malformed "+envelopeKey+" payload", err)
	}

	md := metadata.New()

	md.Series = toString(fields["series"])
	md.Title = toString(fields["title"])
	md.Issue = toString(fields["issue"])
	md.IssueCount = toInt(fields["numberOfIssues"])
	md.Volume = toInt(fields["volume"])
	md.VolumeCount = toInt(fields["numberOfVolumes"])
	md.Publisher = toString(fields["publisher"])
	md.Year = toInt(fields["publicationYear"])
	md.Month = toInt(fields["publicationMonth"])
	md.Comments = toString(fields["comments"])
	md.Genre = toString(fields["genre"])
	md.Language = toString(fields["language"])
	md.Country = toString(fields["country"])
	md.CriticalRating = toInt(fields["rating"])

	if rawCredits, ok := fields["credits"].([]any); ok {
		for _, raw := range rawCredits {
			entry, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			person := stringOr(entry["person"], "")
			role := stringOr(entry["role"], "")
			if person == "" || role == "" {
				continue
			}
			primary, _ := entry["primary"].(bool)
			md.AddCredit(person, role, primary)
		}
	}

	if rawTags, ok := fields["tags"].([]any); ok {
		for _, raw := range rawTags {
			if tag := stringOr(raw, ""); tag != "" {
				md.Tags = append(md.Tags, tag)
			}
		}
	}

	md.IsEmpty = false
	md.TagOrigin = metadata.OriginCBI

	return md, nil
}

// Validate reports whether the bytes look like a CBI document.
func Validate(data []byte) bool {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return false
	}
	_, ok := doc[envelopeKey]
	return ok
}

// toString coerces a JSON value to an optional string: strings pass
// through (blank means absent), numbers are stringified.
func toString(v any) *string {
	switch value := v.(type) {
	case string:
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			return nil
		}
		return &trimmed
	case float64:
		s := strconv.FormatFloat(value, 'f', -1, 64)
		return &s
	default:
		return nil
	}
}

// toInt coerces a JSON value to an optional int: numbers truncate,
// numeric strings parse, anything else is absent.
func toInt(v any) *int {
	switch value := v.(type) {
	case float64:
		n := int(value)
		return &n
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return nil
		}
		return &n
	default:
		return nil
	}
}

func stringOr(v any, fallback string) string {
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return fallback
}
