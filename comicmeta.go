// Package comicmeta reads, merges, and writes comic book metadata in the
// competing tagging schemes: ComicRack's ComicInfo.xml (CIX),
// ComicBookLover's JSON block (CBI), and CoMet XML. A Tagger binds the
// codecs to one archive; the metadata model and overlay rules live in
// pkg/metadata and can be used without any archive at all.
package comicmeta

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/inkdex/comicmeta/pkg/archive"
	"github.com/inkdex/comicmeta/pkg/cbi"
	"github.com/inkdex/comicmeta/pkg/comet"
	"github.com/inkdex/comicmeta/pkg/comicinfo"
	"github.com/inkdex/comicmeta/pkg/errors"
	"github.com/inkdex/comicmeta/pkg/filename"
	"github.com/inkdex/comicmeta/pkg/metadata"
)

// Tagger reads and writes tag blocks on a single archive.
type Tagger interface {
	// Archiver returns the underlying storage backend.
	Archiver() archive.Archiver

	// Read decodes the tag block of the given style. Archives without
	// that block return an error satisfying errors.ErrNotFound.
	Read(style archive.TagStyle) (*metadata.GenericMetadata, error)

	// ReadAll decodes every tag block present and overlays them in
	// fixed precedence, CoMet lowest, then CBI, then CIX. With
	// WithFilenameParsing, a guess from the archive's file name sits
	// below all of them. An archive yielding no source at all returns
	// ErrNotFound.
	ReadAll() (*metadata.GenericMetadata, error)

	// Write encodes the metadata and stores it as the given style.
	// A CIX write edits the existing document in place so unknown
	// elements written by other tools survive.
	Write(md *metadata.GenericMetadata, style archive.TagStyle) error

	// Remove deletes the tag block of the given style. Removing an
	// absent block is a no-op.
	Remove(style archive.TagStyle) error

	// Styles reports which tag styles the archive currently carries.
	Styles() ([]archive.TagStyle, error)
}

// tagger is the internal implementation of the Tagger interface
type tagger struct {
	mu         sync.Mutex
	archiver   archive.Archiver
	logger     zerolog.Logger
	parseNames bool
}

// New creates a Tagger with the given options. Exactly one archive
// source option is required: WithArchiver, WithZip, or WithDir.
func New(opts ...Option) (Tagger, error) {
	c := &config{}
	if err := c.apply(opts...); err != nil {
		return nil, err
	}
	if c.archiver == nil {
		return nil, errors.New("an archive is required: use WithArchiver, WithZip, or WithDir")
	}

	t := &tagger{
		archiver:   c.archiver,
		logger:     c.logger(),
		parseNames: c.parseNames,
	}
	return t, nil
}

// Archiver returns the underlying storage backend.
func (t *tagger) Archiver() archive.Archiver {
	return t.archiver
}

// Read decodes the tag block of the given style.
func (t *tagger) Read(style archive.TagStyle) (*metadata.GenericMetadata, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.read(style)
}

func (t *tagger) read(style archive.TagStyle) (*metadata.GenericMetadata, error) {
	data, err := t.archiver.ReadTagBlock(style)
	if err != nil {
		return nil, err
	}
	md, err := decode(style, data)
	if err != nil {
		return nil, err
	}
	t.logger.Debug().Str("style", style.String()).Msg("Read tag block")
	return md, nil
}

// ReadAll overlays every block present, CoMet < CBI < CIX.
func (t *tagger) ReadAll() (*metadata.GenericMetadata, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	merged := metadata.New()
	found := 0
	if t.parseNames {
		if guess := filename.Parse(t.archiver.Path()); !guess.IsEmpty {
			merged.Overlay(guess)
			found++
		}
	}
	for _, style := range archive.Styles() {
		md, err := t.read(style)
		if errors.IsNotFound(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		merged.Overlay(md)
		found++
	}
	if found == 0 {
		return nil, errors.NewNotFoundError("tag block", "any style")
	}
	t.logger.Debug().Int("styles", found).Msg("Merged tag blocks")
	return merged, nil
}

// Write encodes and stores the metadata as the given style.
func (t *tagger) Write(md *metadata.GenericMetadata, style archive.TagStyle) error {
	if md == nil {
		return errors.New("nil metadata")
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	var (
		data []byte
		err  error
	)
	switch style {
	case archive.StyleCIX:
		// Preserve foreign elements by editing the stored document.
		existing, readErr := t.archiver.ReadTagBlock(style)
		if readErr != nil && !errors.IsNotFound(readErr) {
			return readErr
		}
		data, err = comicinfo.Encode(md, existing)
	case archive.StyleCBI:
		data, err = cbi.Encode(md)
	case archive.StyleCoMet:
		data, err = comet.Encode(md)
	default:
		return errors.ErrUnsupportedStyle
	}
	if err != nil {
		return err
	}

	if err := t.archiver.WriteTagBlock(style, data); err != nil {
		return err
	}
	t.logger.Info().Str("style", style.String()).Msg("Wrote tag block")
	return nil
}

// Remove deletes the tag block of the given style.
func (t *tagger) Remove(style archive.TagStyle) error {
	if !style.Valid() {
		return errors.ErrUnsupportedStyle
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.archiver.RemoveTagBlock(style); err != nil {
		return err
	}
	t.logger.Info().Str("style", style.String()).Msg("Removed tag block")
	return nil
}

// Styles reports which tag styles the archive currently carries.
func (t *tagger) Styles() ([]archive.TagStyle, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var present []archive.TagStyle
	for _, style := range archive.Styles() {
		_, err := t.archiver.ReadTagBlock(style)
		if errors.IsNotFound(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		present = append(present, style)
	}
	return present, nil
}

// Overlaid returns a new record with incoming overlaid onto base,
// leaving both inputs untouched.
func Overlaid(base, incoming *metadata.GenericMetadata) *metadata.GenericMetadata {
	return metadata.Merged(base, incoming)
}

func decode(style archive.TagStyle, data []byte) (*metadata.GenericMetadata, error) {
	switch style {
	case archive.StyleCIX:
		return comicinfo.Decode(data)
	case archive.StyleCBI:
		return cbi.Decode(data)
	case archive.StyleCoMet:
		return comet.Decode(data)
	}
	return nil, errors.ErrUnsupportedStyle
}
