// Package comicinfo converts between the canonical metadata record and
// ComicRack's ComicInfo.xml tagging scheme (CIX).
//
// Encoding can edit a pre-existing document in place: elements and
// attributes this codec does not know about are left exactly where they
// were, so extensions written by other tools survive a round trip through
// this tagger. Decoding is all-or-nothing; a malformed document or a
// foreign root element never partially populates a record.
package comicinfo

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/inkdex/comicmeta/pkg/errors"
	"github.com/inkdex/comicmeta/pkg/issuenum"
	"github.com/inkdex/comicmeta/pkg/logging"
	"github.com/inkdex/comicmeta/pkg/metadata"
	"github.com/inkdex/comicmeta/pkg/roles"
)

// FormatName identifies this scheme in errors and logs.
const FormatName = "cix"

const rootTag = "ComicInfo"

// Credit element names CIX understands, in schema order. CoverArtist is
// handled separately because its canonical role is "Cover".
var creditElements = []string{"Writer", "Penciller", "Inker", "Colorist", "Letterer", "Editor"}

// cixBuckets maps canonical roles to the CIX element each is written to.
var cixBuckets = map[roles.CanonicalRole]string{
	roles.Writer:      "Writer",
	roles.Penciller:   "Penciller",
	roles.Inker:       "Inker",
	roles.Colorist:    "Colorist",
	roles.Letterer:    "Letterer",
	roles.CoverArtist: "CoverArtist",
	roles.Editor:      "Editor",
}

// Decode parses a ComicInfo.xml document into a canonical metadata record.
// It returns a FormatError when the bytes are not well-formed XML or the
// root element is not ComicInfo. Unparseable numeric element text is
// deliberate leniency: the field is left absent, not treated as an error,
// for interoperability with malformed third-party files.
func Decode(data []byte) (*metadata.GenericMetadata, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, errors.NewFormatError(FormatName, "malformed XML", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, errors.NewFormatError(FormatName, "document has no root element", nil)
	}
	if root.Tag != rootTag {
		return nil, errors.NewFormatError(FormatName, "root element is not "+rootTag, nil)
	}

	md := metadata.New()

	text := func(name string) string {
		el := root.SelectElement(name)
		if el == nil {
			return ""
		}
		return strings.TrimSpace(el.Text())
	}
	setString := func(dst **string, name string) {
		if s := text(name); s != "" {
			*dst = &s
		}
	}
	setInt := func(dst **int, name string) {
		s := text(name)
		if s == "" {
			return
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			logging.Debug().
				Str("element", name).
				Str("text", s).
				Msg("skipping non-numeric element text")
			return
		}
		*dst = &n
	}
	setIssue := func(dst **string, name string) {
		if s := text(name); s != "" {
			norm := issuenum.Normalize(s)
			*dst = &norm
		}
	}

	setString(&md.Series, "Series")
	setString(&md.Title, "Title")
	setIssue(&md.Issue, "Number")
	setInt(&md.IssueCount, "Count")
	setInt(&md.Volume, "Volume")
	setString(&md.AlternateSeries, "AlternateSeries")
	setIssue(&md.AlternateNumber, "AlternateNumber")
	setInt(&md.AlternateCount, "AlternateCount")
	setString(&md.Comments, "Summary")
	setString(&md.Notes, "Notes")
	setInt(&md.Year, "Year")
	setInt(&md.Month, "Month")
	setInt(&md.Day, "Day")
	setString(&md.Publisher, "Publisher")
	setString(&md.Imprint, "Imprint")
	setString(&md.Genre, "Genre")
	setString(&md.WebLink, "Web")
	setString(&md.Language, "LanguageISO")
	setString(&md.Format, "Format")
	setString(&md.Manga, "Manga")
	setString(&md.Characters, "Characters")
	setString(&md.Teams, "Teams")
	setString(&md.Locations, "Locations")
	setInt(&md.PageCount, "PageCount")
	setString(&md.ScanInfo, "ScanInformation")
	setString(&md.StoryArc, "StoryArc")
	setString(&md.SeriesGroup, "SeriesGroup")
	setString(&md.MaturityRating, "AgeRating")

	// BlackAndWhite is a one-way flag: there is no explicit "color"
	// representation, only presence of a yes value.
	switch strings.ToLower(text("BlackAndWhite")) {
	case "yes", "true", "1":
		md.BlackAndWhite = metadata.Bool(true)
	}

	// Credit elements hold comma-separated person lists; each name becomes
	// its own credit under the element's role.
	for _, el := range root.ChildElements() {
		role := el.Tag
		if role == "CoverArtist" {
			role = roles.CoverArtist.String()
		} else if !isCreditElement(el.Tag) {
			continue
		}
		for _, person := range splitPersons(el.Text()) {
			md.AddCredit(person, role, false)
		}
	}

	if pages := root.SelectElement("Pages"); pages != nil {
		for _, page := range pages.SelectElements("Page") {
			attrs := make(map[string]string, len(page.Attr))
			for _, a := range page.Attr {
				attrs[a.Key] = a.Value
			}
			md.Pages = append(md.Pages, metadata.PageFromAttrs(attrs))
		}
	}

	// A decoded document counts as processed even if nothing was tagged.
	md.IsEmpty = false
	md.TagOrigin = metadata.OriginComicInfo

	return md, nil
}

// Encode renders a canonical metadata record as a ComicInfo.xml document.
// When existing is non-nil it is parsed and edited in place, preserving
// any element or attribute this codec does not manage; otherwise a fresh
// document is generated. Encode never mutates md.
func Encode(md *metadata.GenericMetadata, existing []byte) ([]byte, error) {
	doc := etree.NewDocument()
	var root *etree.Element

	if existing != nil {
		if err := doc.ReadFromBytes(existing); err != nil {
			return nil, errors.NewFormatError(FormatName, "malformed existing XML", err)
		}
		root = doc.Root()
		if root == nil {
			return nil, errors.NewFormatError(FormatName, "existing document has no root element", nil)
		}
	} else {
		doc.CreateProcInst("xml", `version="1.0" encoding="utf-8"`)
		root = doc.CreateElement(rootTag)
		root.CreateAttr("xmlns:xsi", "http://www.w3.org/2001/XMLSchema-instance")
		root.CreateAttr("xmlns:xsd", "http://www.w3.org/2001/XMLSchema")
	}

	assign := func(name, value string) {
		if value != "" {
			el := root.SelectElement(name)
			if el == nil {
				el = root.CreateElement(name)
			}
			el.SetText(value)
			return
		}
		// Absent or empty clears the element's text but keeps the element,
		// mirroring the merge engine's empty-clears convention.
		if el := root.SelectElement(name); el != nil {
			el.SetText("")
		}
	}

	assign("Title", fromString(md.Title))
	assign("Series", fromString(md.Series))
	assign("Number", fromString(md.Issue))
	assign("Count", fromInt(md.IssueCount))
	assign("Volume", fromInt(md.Volume))
	assign("AlternateSeries", fromString(md.AlternateSeries))
	assign("AlternateNumber", fromString(md.AlternateNumber))
	assign("StoryArc", fromString(md.StoryArc))
	assign("SeriesGroup", fromString(md.SeriesGroup))
	assign("AlternateCount", fromInt(md.AlternateCount))
	assign("Summary", fromString(md.Comments))
	assign("Notes", fromString(md.Notes))
	assign("Year", fromInt(md.Year))
	assign("Month", fromInt(md.Month))
	assign("Day", fromInt(md.Day))

	// Credits are shaped differently than CIX wants: bucket each credit by
	// canonical role. A credit whose role matches several buckets (e.g.
	// "artist") is written into every one, the same fan-out decode does.
	buckets := make(map[roles.CanonicalRole][]string)
	for _, credit := range md.Credits {
		for _, canonical := range roles.Classify(credit.Role) {
			// Strip commas so the joined list re-splits cleanly on decode.
			buckets[canonical] = append(buckets[canonical], strings.ReplaceAll(credit.Person, ",", ""))
		}
	}
	for _, canonical := range roles.All {
		assign(cixBuckets[canonical], strings.Join(buckets[canonical], ", "))
	}

	assign("Publisher", fromString(md.Publisher))
	assign("Imprint", fromString(md.Imprint))
	assign("Genre", fromString(md.Genre))
	assign("Web", fromString(md.WebLink))
	assign("PageCount", fromInt(md.PageCount))
	assign("LanguageISO", fromString(md.Language))
	assign("Format", fromString(md.Format))
	assign("AgeRating", fromString(md.MaturityRating))
	if md.BlackAndWhite != nil && *md.BlackAndWhite {
		assign("BlackAndWhite", "Yes")
	} else {
		// One-way flag: never writes an explicit "No", only clears.
		assign("BlackAndWhite", "")
	}
	assign("Manga", fromString(md.Manga))
	assign("Characters", fromString(md.Characters))
	assign("Teams", fromString(md.Teams))
	assign("Locations", fromString(md.Locations))
	assign("ScanInformation", fromString(md.ScanInfo))

	// The Pages container is cleared and rebuilt every time; attributes are
	// written sorted by key so identical input produces identical bytes.
	pages := root.SelectElement("Pages")
	if pages != nil {
		for _, child := range pages.ChildElements() {
			pages.RemoveChild(child)
		}
	} else {
		pages = root.CreateElement("Pages")
	}
	for _, p := range md.Pages {
		page := pages.CreateElement("Page")
		attrs := p.Attrs()
		for _, key := range p.AttrKeys() {
			page.CreateAttr(key, attrs[key])
		}
	}

	if existing != nil && !hasProcInst(doc) {
		doc.Element.InsertChildAt(0, etree.NewProcInst("xml", `version="1.0" encoding="utf-8"`))
	}

	doc.Indent(2)
	return doc.WriteToBytes()
}

func isCreditElement(tag string) bool {
	for _, name := range creditElements {
		if tag == name {
			return true
		}
	}
	return false
}

// splitPersons breaks a comma-separated person list into trimmed,
// non-empty names.
func splitPersons(text string) []string {
	var persons []string
	for _, part := range strings.Split(text, ",") {
		if name := strings.TrimSpace(part); name != "" {
			persons = append(persons, name)
		}
	}
	return persons
}

func fromString(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func fromInt(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}

func hasProcInst(doc *etree.Document) bool {
	for _, token := range doc.Element.Child {
		if _, ok := token.(*etree.ProcInst); ok {
			return true
		}
	}
	return false
}
