package archive

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/inkdex/comicmeta/pkg/errors"
	"github.com/inkdex/comicmeta/pkg/logging"
)

// ZipArchive stores pages and tag blocks in a zip file (.cbz). CIX and
// CoMet blocks are archive entries; the CBI block lives in the zip
// comment. Writes rewrite the archive to a temp file in the same
// directory and rename it into place, so a failed write never corrupts
// the original.
type ZipArchive struct {
	path   string
	logger zerolog.Logger
}

// NewZip returns a ZipArchive for the zip file at path. The file must
// exist and be readable as a zip.
func NewZip(path string) (*ZipArchive, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	r.Close()
	logger := logging.Default().With().Str("archive", filepath.Base(path)).Logger()
	return &ZipArchive{path: path, logger: logger}, nil
}

// Path returns the zip file location.
func (z *ZipArchive) Path() string {
	return z.path
}

// PageCount returns the number of image entries.
func (z *ZipArchive) PageCount() (int, error) {
	names, r, err := z.pageNames()
	if err != nil {
		return 0, err
	}
	r.Close()
	return len(names), nil
}

// Page returns the bytes of the image entry at index in page order.
func (z *ZipArchive) Page(index int) ([]byte, error) {
	names, r, err := z.pageNames()
	if err != nil {
		return nil, err
	}
	defer r.Close()
	if index < 0 || index >= len(names) {
		return nil, errors.NewNotFoundError("page", strconv.Itoa(index))
	}
	for _, f := range r.File {
		if f.Name == names[index] {
			return readEntry(f)
		}
	}
	return nil, errors.NewNotFoundError("page", names[index])
}

// ReadTagBlock returns the raw block for the style.
func (z *ZipArchive) ReadTagBlock(style TagStyle) ([]byte, error) {
	r, err := zip.OpenReader(z.path)
	if err != nil {
		return nil, errors.WrapIO("open", z.path, err)
	}
	defer r.Close()

	if style == StyleCBI {
		if r.Comment == "" {
			return nil, errors.NewNotFoundError("tag block", style.String())
		}
		return []byte(r.Comment), nil
	}

	name, err := entryName(style)
	if err != nil {
		return nil, err
	}
	if f := findEntry(&r.Reader, name); f != nil {
		return readEntry(f)
	}
	return nil, errors.NewNotFoundError("tag block", style.String())
}

// WriteTagBlock replaces the block for the style, rewriting the archive.
func (z *ZipArchive) WriteTagBlock(style TagStyle, data []byte) error {
	z.logger.Debug().Str("style", style.String()).Int("bytes", len(data)).Msg("Writing tag block")
	return z.rewrite(style, data, false)
}

// RemoveTagBlock deletes the block for the style. Missing blocks are
// left alone without error.
func (z *ZipArchive) RemoveTagBlock(style TagStyle) error {
	z.logger.Debug().Str("style", style.String()).Msg("Removing tag block")
	return z.rewrite(style, nil, true)
}

// rewrite copies the archive to a temp file, applying the tag change,
// then renames it over the original.
func (z *ZipArchive) rewrite(style TagStyle, data []byte, remove bool) error {
	if !style.Valid() {
		return errors.ErrUnsupportedStyle
	}

	r, err := zip.OpenReader(z.path)
	if err != nil {
		return errors.WrapIO("open", z.path, err)
	}
	defer r.Close()

	tmp, err := os.CreateTemp(filepath.Dir(z.path), ".comicmeta-*.zip")
	if err != nil {
		return errors.WrapIO("create", z.path, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := z.copyArchive(&r.Reader, tmp, style, data, remove); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return errors.WrapIO("close", tmpPath, err)
	}
	if err := os.Rename(tmpPath, z.path); err != nil {
		return errors.WrapIO("write", z.path, err)
	}
	return nil
}

func (z *ZipArchive) copyArchive(r *zip.Reader, dst io.Writer, style TagStyle, data []byte, remove bool) error {
	w := zip.NewWriter(dst)

	comment := r.Comment
	if style == StyleCBI {
		comment = string(data)
		if remove {
			comment = ""
		}
	}
	if err := w.SetComment(comment); err != nil {
		return errors.WrapIO("write", z.path, err)
	}

	skip := ""
	if style != StyleCBI {
		name, err := entryName(style)
		if err != nil {
			return err
		}
		skip = name
	}

	for _, f := range r.File {
		if skip != "" && strings.EqualFold(baseName(f.Name), skip) {
			continue
		}
		if err := w.Copy(f); err != nil {
			return errors.WrapIO("write", z.path, err)
		}
	}

	if style != StyleCBI && !remove {
		fw, err := w.Create(skip)
		if err != nil {
			return errors.WrapIO("write", z.path, err)
		}
		if _, err := fw.Write(data); err != nil {
			return errors.WrapIO("write", z.path, err)
		}
	}

	if err := w.Close(); err != nil {
		return errors.WrapIO("close", z.path, err)
	}
	return nil
}

// pageNames lists sorted image entry names. The returned ReadCloser is
// open only when err is nil and names are needed alongside entry access.
func (z *ZipArchive) pageNames() ([]string, *zip.ReadCloser, error) {
	r, err := zip.OpenReader(z.path)
	if err != nil {
		return nil, nil, errors.WrapIO("open", z.path, err)
	}
	var names []string
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if isImageName(f.Name) {
			names = append(names, f.Name)
		}
	}
	sortPages(names)
	return names, r, nil
}

func entryName(style TagStyle) (string, error) {
	switch style {
	case StyleCIX:
		return comicInfoName, nil
	case StyleCoMet:
		return cometName, nil
	}
	return "", errors.ErrUnsupportedStyle
}

// findEntry locates an entry by base name, ignoring case and any
// directory prefix some tools add.
func findEntry(r *zip.Reader, name string) *zip.File {
	for _, f := range r.File {
		if strings.EqualFold(baseName(f.Name), name) {
			return f
		}
	}
	return nil
}

func baseName(entry string) string {
	if i := strings.LastIndexAny(entry, "/\\"); i >= 0 {
		return entry[i+1:]
	}
	return entry
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, errors.WrapIO("read", f.Name, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, errors.WrapIO("read", f.Name, err)
	}
	return data, nil
}
