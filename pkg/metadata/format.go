package metadata

import (
	"fmt"
	"strings"
)

// String renders a human-readable summary of the record, one aligned
// "field: value" line per populated field.
func (md *GenericMetadata) String() string {
	if md.IsEmpty {
		return "No metadata"
	}

	type pair struct {
		label string
		value string
	}
	var vals []pair

	addStr := func(label string, p *string) {
		if p != nil && *p != "" {
			vals = append(vals, pair{label, *p})
		}
	}
	addInt := func(label string, p *int) {
		if p != nil {
			vals = append(vals, pair{label, fmt.Sprintf("%d", *p)})
		}
	}

	addStr("series", md.Series)
	addStr("issue", md.Issue)
	addInt("issue_count", md.IssueCount)
	addStr("title", md.Title)
	addStr("publisher", md.Publisher)
	addInt("year", md.Year)
	addInt("month", md.Month)
	addInt("day", md.Day)
	addInt("volume", md.Volume)
	addInt("volume_count", md.VolumeCount)
	addStr("genre", md.Genre)
	addStr("language", md.Language)
	addStr("country", md.Country)
	addInt("critical_rating", md.CriticalRating)
	addStr("alternate_series", md.AlternateSeries)
	addStr("alternate_number", md.AlternateNumber)
	addInt("alternate_count", md.AlternateCount)
	addStr("imprint", md.Imprint)
	addStr("web_link", md.WebLink)
	addStr("format", md.Format)
	addStr("manga", md.Manga)

	addStr("price", md.Price)
	addStr("is_version_of", md.IsVersionOf)
	addStr("rights", md.Rights)
	addStr("identifier", md.Identifier)
	addStr("last_mark", md.LastMark)

	if md.BlackAndWhite != nil && *md.BlackAndWhite {
		vals = append(vals, pair{"black_and_white", "true"})
	}
	addStr("maturity_rating", md.MaturityRating)
	addStr("story_arc", md.StoryArc)
	addStr("series_group", md.SeriesGroup)
	addStr("scan_info", md.ScanInfo)
	addStr("characters", md.Characters)
	addStr("teams", md.Teams)
	addStr("locations", md.Locations)
	addStr("comments", md.Comments)
	addStr("notes", md.Notes)

	if len(md.Tags) > 0 {
		vals = append(vals, pair{"tags", strings.Join(md.Tags, ", ")})
	}

	for _, c := range md.Credits {
		primary := ""
		if c.Primary {
			primary = " [P]"
		}
		vals = append(vals, pair{"credit", c.Role + ": " + c.Person + primary})
	}

	// Align the values on the longest label.
	width := 0
	for _, v := range vals {
		if len(v.label) > width {
			width = len(v.label)
		}
	}

	var sb strings.Builder
	for _, v := range vals {
		fmt.Fprintf(&sb, "%-*s %s\n", width+1, v.label+":", v.value)
	}
	return sb.String()
}
