package archive

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/inkdex/comicmeta/pkg/errors"
	"github.com/inkdex/comicmeta/pkg/logging"
)

// DirArchive treats a folder of images as an unpacked comic. Tag blocks
// are sidecar files next to the images: ComicInfo.xml, CoMet.xml, and
// ComicBookInfo.json for the CBI block, which has no zip comment to
// live in here.
type DirArchive struct {
	path   string
	logger zerolog.Logger
}

// NewDir returns a DirArchive rooted at path, which must be an existing
// directory.
func NewDir(path string) (*DirArchive, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	if !info.IsDir() {
		return nil, errors.NewIOError("open", path, errors.New("not a directory"))
	}
	logger := logging.Default().With().Str("archive", filepath.Base(path)).Logger()
	return &DirArchive{path: path, logger: logger}, nil
}

// Path returns the directory location.
func (d *DirArchive) Path() string {
	return d.path
}

// PageCount returns the number of image files in the directory.
func (d *DirArchive) PageCount() (int, error) {
	names, err := d.pageNames()
	if err != nil {
		return 0, err
	}
	return len(names), nil
}

// Page returns the bytes of the image file at index in page order.
func (d *DirArchive) Page(index int) ([]byte, error) {
	names, err := d.pageNames()
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(names) {
		return nil, errors.NewNotFoundError("page", strconv.Itoa(index))
	}
	data, err := os.ReadFile(filepath.Join(d.path, names[index]))
	if err != nil {
		return nil, errors.WrapIO("read", names[index], err)
	}
	return data, nil
}

// ReadTagBlock returns the sidecar file contents for the style.
func (d *DirArchive) ReadTagBlock(style TagStyle) ([]byte, error) {
	name, err := sidecarName(style)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(d.path, name))
	if os.IsNotExist(err) {
		return nil, errors.NewNotFoundError("tag block", style.String())
	}
	if err != nil {
		return nil, errors.WrapIO("read", name, err)
	}
	return data, nil
}

// WriteTagBlock writes the sidecar file for the style.
func (d *DirArchive) WriteTagBlock(style TagStyle, data []byte) error {
	name, err := sidecarName(style)
	if err != nil {
		return err
	}
	d.logger.Debug().Str("style", style.String()).Int("bytes", len(data)).Msg("Writing tag block")
	if err := os.WriteFile(filepath.Join(d.path, name), data, 0o644); err != nil {
		return errors.WrapIO("write", name, err)
	}
	return nil
}

// RemoveTagBlock deletes the sidecar file for the style. Missing files
// are left alone without error.
func (d *DirArchive) RemoveTagBlock(style TagStyle) error {
	name, err := sidecarName(style)
	if err != nil {
		return err
	}
	d.logger.Debug().Str("style", style.String()).Msg("Removing tag block")
	if err := os.Remove(filepath.Join(d.path, name)); err != nil && !os.IsNotExist(err) {
		return errors.WrapIO("delete", name, err)
	}
	return nil
}

func (d *DirArchive) pageNames() ([]string, error) {
	entries, err := os.ReadDir(d.path)
	if err != nil {
		return nil, errors.WrapIO("read", d.path, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if isImageName(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sortPages(names)
	return names, nil
}

func sidecarName(style TagStyle) (string, error) {
	switch style {
	case StyleCIX:
		return comicInfoName, nil
	case StyleCBI:
		return cbiName, nil
	case StyleCoMet:
		return cometName, nil
	}
	return "", errors.ErrUnsupportedStyle
}
