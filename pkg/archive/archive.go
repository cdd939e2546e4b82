// Package archive defines the boundary between tag codecs and the files
// that carry them. An Archiver exposes page images and raw tag blocks;
// it never interprets the blocks it stores.
package archive

import (
	"sort"
	"strings"
)

// TagStyle identifies where in an archive a tag block lives and which
// codec owns its bytes.
type TagStyle string

// Supported tag styles.
const (
	// StyleCIX is the ComicRack ComicInfo.xml entry.
	StyleCIX TagStyle = "cix"

	// StyleCBI is the ComicBookLover JSON block, stored in the zip
	// comment for zip archives and a sidecar file otherwise.
	StyleCBI TagStyle = "cbi"

	// StyleCoMet is the CoMet.xml entry.
	StyleCoMet TagStyle = "comet"
)

// String returns the style identifier.
func (s TagStyle) String() string {
	return string(s)
}

// Valid reports whether the style is one this package knows how to store.
func (s TagStyle) Valid() bool {
	switch s {
	case StyleCIX, StyleCBI, StyleCoMet:
		return true
	}
	return false
}

// Styles lists all supported tag styles in merge-precedence order,
// lowest first.
func Styles() []TagStyle {
	return []TagStyle{StyleCoMet, StyleCBI, StyleCIX}
}

// Well-known entry and sidecar names.
const (
	comicInfoName = "ComicInfo.xml"
	cometName     = "CoMet.xml"
	cbiName       = "ComicBookInfo.json"
)

// Archiver is the storage backend for tag blocks and page images.
// Implementations must be safe for use by a single goroutine; callers
// that share an Archiver provide their own synchronization.
type Archiver interface {
	// Path returns the location of the archive on disk.
	Path() string

	// PageCount returns the number of page images.
	PageCount() (int, error)

	// Page returns the raw bytes of the page at the given index.
	// Indexes out of range return an error satisfying errors.ErrNotFound.
	Page(index int) ([]byte, error)

	// ReadTagBlock returns the raw tag block for the style, or an error
	// satisfying errors.ErrNotFound when the archive carries none.
	ReadTagBlock(style TagStyle) ([]byte, error)

	// WriteTagBlock stores the raw tag block for the style, replacing
	// any existing block.
	WriteTagBlock(style TagStyle, data []byte) error

	// RemoveTagBlock deletes the tag block for the style. Removing a
	// block that is not present is a no-op.
	RemoveTagBlock(style TagStyle) error
}

var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".bmp":  true,
}

func isImageName(name string) bool {
	i := strings.LastIndex(name, ".")
	if i < 0 {
		return false
	}
	return imageExts[strings.ToLower(name[i:])]
}

// sortPages orders page names the way readers expect: case-insensitive
// lexical order, ties broken by the original casing.
func sortPages(names []string) {
	sort.Slice(names, func(i, j int) bool {
		a, b := strings.ToLower(names[i]), strings.ToLower(names[j])
		if a != b {
			return a < b
		}
		return names[i] < names[j]
	})
}
