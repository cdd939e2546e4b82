package comicmeta

import (
	"github.com/rs/zerolog"

	"github.com/inkdex/comicmeta/pkg/archive"
	"github.com/inkdex/comicmeta/pkg/logging"
)

// Option is a function that configures a Tagger instance
type Option func(*config) error

type config struct {
	archiver   archive.Archiver
	log        *zerolog.Logger
	parseNames bool
}

func (c *config) apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

func (c *config) logger() zerolog.Logger {
	base := c.log
	if base == nil {
		base = logging.Default()
	}
	if c.archiver != nil {
		return base.With().Str("archive", c.archiver.Path()).Logger()
	}
	return *base
}

// WithArchiver configures the storage backend directly. Use this for
// archive formats this module does not ship an implementation for.
func WithArchiver(a archive.Archiver) Option {
	return func(c *config) error {
		c.archiver = a
		return nil
	}
}

// WithZip opens the zip archive (.cbz) at path as the storage backend.
func WithZip(path string) Option {
	return func(c *config) error {
		z, err := archive.NewZip(path)
		if err != nil {
			return err
		}
		c.archiver = z
		return nil
	}
}

// WithDir opens the image directory at path as the storage backend.
func WithDir(path string) Option {
	return func(c *config) error {
		d, err := archive.NewDir(path)
		if err != nil {
			return err
		}
		c.archiver = d
		return nil
	}
}

// WithFilenameParsing seeds ReadAll's merged view with fields guessed
// from the archive's file name. The guess is the lowest-priority source:
// any tag block present overrides it field by field.
func WithFilenameParsing() Option {
	return func(c *config) error {
		c.parseNames = true
		return nil
	}
}

// WithLogger configures the logger used for read/write reporting.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *config) error {
		c.log = logger
		return nil
	}
}
