// Package comet converts between the canonical metadata record and the
// CoMet XML tagging scheme. CoMet documents are always generated fresh;
// the scheme has no in-place editing convention.
package comet

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/inkdex/comicmeta/pkg/errors"
	"github.com/inkdex/comicmeta/pkg/logging"
	"github.com/inkdex/comicmeta/pkg/metadata"
	"github.com/inkdex/comicmeta/pkg/roles"
)

// FormatName identifies this scheme in errors and logs.
const FormatName = "comet"

const rootTag = "comet"

// cometBuckets maps canonical roles to the CoMet element each is written
// to. CoMet writes one element per credit rather than comma-joining.
var cometBuckets = map[roles.CanonicalRole]string{
	roles.Writer:      "writer",
	roles.Penciller:   "penciller",
	roles.Inker:       "inker",
	roles.Colorist:    "colorist",
	roles.Letterer:    "letterer",
	roles.CoverArtist: "coverDesigner",
	roles.Editor:      "editor",
}

// creditTags maps lower-case CoMet credit elements back to canonical roles.
var creditTags = map[string]roles.CanonicalRole{
	"writer":        roles.Writer,
	"penciller":     roles.Penciller,
	"inker":         roles.Inker,
	"colorist":      roles.Colorist,
	"letterer":      roles.Letterer,
	"editor":        roles.Editor,
	"coverDesigner": roles.CoverArtist,
}

// Encode renders a canonical metadata record as a fresh CoMet document.
// Encode never mutates md.
func Encode(md *metadata.GenericMetadata) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement(rootTag)
	root.CreateAttr("xmlns:comet", "http://www.denvog.com/comet/")
	root.CreateAttr("xmlns:xsi", "http://www.w3.org/2001/XMLSchema-instance")
	root.CreateAttr("xsi:schemaLocation", "http://www.denvog.com http://www.denvog.com/comet/comet.xsd")

	assign := func(name, value string) {
		if value != "" {
			root.CreateElement(name).SetText(value)
		}
	}

	// The schema makes title mandatory; an absent title becomes an empty
	// element rather than an invalid document.
	if md.Title != nil {
		root.CreateElement("title").SetText(*md.Title)
	} else {
		root.CreateElement("title")
	}
	assign("series", fromString(md.Series))
	assign("issue", fromString(md.Issue))
	assign("volume", fromInt(md.Volume))
	assign("description", fromString(md.Comments))
	assign("publisher", fromString(md.Publisher))
	assign("pages", fromInt(md.PageCount))
	assign("format", fromString(md.Format))
	assign("language", fromString(md.Language))
	assign("rating", fromString(md.MaturityRating))
	assign("price", fromString(md.Price))
	assign("isVersionOf", fromString(md.IsVersionOf))
	assign("rights", fromString(md.Rights))
	assign("identifier", fromString(md.Identifier))
	assign("lastMark", fromString(md.LastMark))
	assign("genre", fromString(md.Genre))

	// Characters are a repeatable element in CoMet; the canonical record's
	// comma-joined list splits back out.
	if md.Characters != nil {
		for _, part := range strings.Split(*md.Characters, ",") {
			if name := strings.TrimSpace(part); name != "" {
				assign("character", name)
			}
		}
	}

	if md.Manga != nil && *md.Manga == metadata.MangaYesRightToLeft {
		assign("readingDirection", "rtl")
	}

	if md.Year != nil {
		date := fmt.Sprintf("%04d", *md.Year)
		if md.Month != nil {
			date += fmt.Sprintf("-%02d", *md.Month)
		}
		assign("date", date)
	}

	assign("coverImage", fromString(md.CoverImage))

	// One element per credit per matching role bucket. The multi-bucket
	// fan-out ("artist" to both penciller and inker) matches the CIX codec.
	for _, credit := range md.Credits {
		for _, canonical := range roles.Classify(credit.Role) {
			root.CreateElement(cometBuckets[canonical]).SetText(credit.Person)
		}
	}

	doc.Indent(2)
	return doc.WriteToBytes()
}

// Decode parses a CoMet document into a canonical metadata record. It
// returns a FormatError when the bytes are not well-formed XML or the root
// element is not comet.
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

	setString(&md.Series, "series")
	setString(&md.Title, "title")
	setString(&md.Issue, "issue")
	setInt(&md.Volume, "volume")
	setString(&md.Comments, "description")
	setString(&md.Publisher, "publisher")
	setString(&md.Language, "language")
	setString(&md.Format, "format")
	setInt(&md.PageCount, "pages")
	setString(&md.MaturityRating, "rating")
	setString(&md.Price, "price")
	setString(&md.IsVersionOf, "isVersionOf")
	setString(&md.Rights, "rights")
	setString(&md.Identifier, "identifier")
	setString(&md.LastMark, "lastMark")
	setString(&md.Genre, "genre")
	setString(&md.CoverImage, "coverImage")

	if date := text("date"); date != "" {
		parts := strings.SplitN(date, "-", 3)
		if year, err := strconv.Atoi(parts[0]); err == nil {
			md.Year = &year
		}
		if len(parts) > 1 {
			if month, err := strconv.Atoi(parts[1]); err == nil {
				md.Month = &month
			}
		}
	}

	if text("readingDirection") == "rtl" {
		md.Manga = metadata.Str(metadata.MangaYesRightToLeft)
	}

	var characters []string
	for _, el := range root.SelectElements("character") {
		if name := strings.TrimSpace(el.Text()); name != "" {
			characters = append(characters, name)
		}
	}
	if len(characters) > 0 {
		md.Characters = metadata.Str(strings.Join(characters, ", "))
	}

	for _, el := range root.ChildElements() {
		canonical, ok := creditTags[el.Tag]
		if !ok {
			continue
		}
		if person := strings.TrimSpace(el.Text()); person != "" {
			md.AddCredit(person, canonical.String(), false)
		}
	}

	md.IsEmpty = false
	md.TagOrigin = metadata.OriginCoMet

	return md, nil
}

// Validate reports whether the bytes look like a CoMet document: parseable
// XML with the expected root element.
func Validate(data []byte) bool {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return false
	}
	root := doc.Root()
	return root != nil && root.Tag == rootTag
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
