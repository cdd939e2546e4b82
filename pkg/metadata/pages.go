package metadata

import (
	"sort"
	"strconv"
)

// PageType classifies a page. The values are exactly the CIX scheme's,
// since it is the only scheme that models pages.
type PageType string

// String returns the string representation of a PageType.
func (pt PageType) String() string {
	return string(pt)
}

// Page types.
const (
	PageFrontCover    PageType = "FrontCover"
	PageInnerCover    PageType = "InnerCover"
	PageRoundup       PageType = "Roundup"
	PageStory         PageType = "Story"
	PageAdvertisement PageType = "Advertisement"
	PageEditorial     PageType = "Editorial"
	PageLetters       PageType = "Letters"
	PagePreview       PageType = "Preview"
	PageBackCover     PageType = "BackCover"
	PageOther         PageType = "Other"
	PageDeleted       PageType = "Deleted"
)

// Page describes one page of the issue. Known attributes get named fields;
// anything else a foreign tagger wrote lands in Extra so it survives a
// round trip untouched. Image is the string-encoded index of the page in
// the archive's page sequence.
type Page struct {
	Image       string            `json:"image,omitempty" yaml:"image,omitempty"`
	Type        PageType          `json:"type,omitempty" yaml:"type,omitempty"`
	ImageSize   string            `json:"image_size,omitempty" yaml:"image_size,omitempty"`
	ImageHeight string            `json:"image_height,omitempty" yaml:"image_height,omitempty"`
	ImageWidth  string            `json:"image_width,omitempty" yaml:"image_width,omitempty"`
	Extra       map[string]string `json:"extra,omitempty" yaml:"extra,omitempty"`
}

// Attribute names with dedicated Page fields.
const (
	pageAttrImage       = "Image"
	pageAttrType        = "Type"
	pageAttrImageSize   = "ImageSize"
	pageAttrImageHeight = "ImageHeight"
	pageAttrImageWidth  = "ImageWidth"
)

// PageFromAttrs builds a Page from a raw attribute map, keeping unknown
// attributes in Extra.
func PageFromAttrs(attrs map[string]string) Page {
	var p Page
	for key, value := range attrs {
		switch key {
		case pageAttrImage:
			p.Image = value
		case pageAttrType:
			p.Type = PageType(value)
		case pageAttrImageSize:
			p.ImageSize = value
		case pageAttrImageHeight:
			p.ImageHeight = value
		case pageAttrImageWidth:
			p.ImageWidth = value
		default:
			if p.Extra == nil {
				p.Extra = make(map[string]string)
			}
			p.Extra[key] = value
		}
	}
	return p
}

// Attrs flattens the page back into attribute form: named fields that are
// set, plus everything in Extra.
func (p Page) Attrs() map[string]string {
	attrs := make(map[string]string, 5+len(p.Extra))
	for key, value := range p.Extra {
		attrs[key] = value
	}
	if p.Image != "" {
		attrs[pageAttrImage] = p.Image
	}
	if p.Type != "" {
		attrs[pageAttrType] = string(p.Type)
	}
	if p.ImageSize != "" {
		attrs[pageAttrImageSize] = p.ImageSize
	}
	if p.ImageHeight != "" {
		attrs[pageAttrImageHeight] = p.ImageHeight
	}
	if p.ImageWidth != "" {
		attrs[pageAttrImageWidth] = p.ImageWidth
	}
	return attrs
}

// AttrKeys returns the page's attribute names sorted, for deterministic
// serialization.
func (p Page) AttrKeys() []string {
	attrs := p.Attrs()
	keys := make([]string, 0, len(attrs))
	for key := range attrs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Copy returns a copy of the page with its own Extra map.
func (p Page) Copy() Page {
	dup := p
	if p.Extra != nil {
		dup.Extra = make(map[string]string, len(p.Extra))
		for key, value := range p.Extra {
			dup.Extra[key] = value
		}
	}
	return dup
}

// archiveIndex parses the Image attribute; pages with a missing or
// malformed index map to the archive's first page.
func (p Page) archiveIndex() int {
	idx, err := strconv.Atoi(p.Image)
	if err != nil || idx < 0 {
		return 0
	}
	return idx
}

// SetDefaultPageList populates an empty page list with count entries whose
// Image index is their position, marking the first page as the front cover.
// A record that already has pages is left untouched; the default list never
// merges with existing entries.
func (md *GenericMetadata) SetDefaultPageList(count int) {
	if len(md.Pages) > 0 {
		return
	}
	for i := 0; i < count; i++ {
		page := Page{Image: strconv.Itoa(i)}
		if i == 0 {
			page.Type = PageFrontCover
		}
		md.Pages = append(md.Pages, page)
	}
}

// ArchivePageIndex converts a displayed page number to the index of that
// page's file within the archive. Out-of-range requests fall back to the
// archive's first page rather than failing.
func (md *GenericMetadata) ArchivePageIndex(displayed int) int {
	if displayed >= 0 && displayed < len(md.Pages) {
		return md.Pages[displayed].archiveIndex()
	}
	return 0
}

// CoverPageIndexList returns the archive index of every page typed as a
// front cover, in page-list order. A record with no explicit cover pages
// yields [0]: the archive's physical first page is the implicit cover.
func (md *GenericMetadata) CoverPageIndexList() []int {
	var covers []int
	for _, p := range md.Pages {
		if p.Type == PageFrontCover {
			covers = append(covers, p.archiveIndex())
		}
	}
	if len(covers) == 0 {
		covers = append(covers, 0)
	}
	return covers
}
