package comicmeta

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkdex/comicmeta/pkg/archive"
	"github.com/inkdex/comicmeta/pkg/errors"
	"github.com/inkdex/comicmeta/pkg/metadata"
)

func newTestZip(t *testing.T, entries map[string]string, comment string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "book.cbz")
	f, err := os.Create(path)
	require.NoError(t, err)
	w := zip.NewWriter(f)
	require.NoError(t, w.SetComment(comment))
	for name, data := range entries {
		fw, err := w.Create(name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(data))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())
	return path
}

func TestNewRequiresArchive(t *testing.T) {
	_, err := New()
	require.Error(t, err)
}

func TestReadSingleStyle(t *testing.T) {
	path := newTestZip(t, map[string]string{
		"p001.jpg":      "page",
		"ComicInfo.xml": `<ComicInfo><Series>Saga</Series><Number>003</Number></ComicInfo>`,
	}, "")
	tagger, err := New(WithZip(path))
	require.NoError(t, err)

	md, err := tagger.Read(archive.StyleCIX)
	require.NoError(t, err)
	require.NotNil(t, md.Series)
	assert.Equal(t, "Saga", *md.Series)
	require.NotNil(t, md.Issue)
	assert.Equal(t, "3", *md.Issue)

	_, err = tagger.Read(archive.StyleCoMet)
	assert.True(t, errors.IsNotFound(err))
}

func TestReadAllPrecedence(t *testing.T) {
	// CoMet and CIX disagree on title; CIX wins. CoMet's publisher has
	// no CIX counterpart and survives the overlay.
	path := newTestZip(t, map[string]string{
		"p001.jpg": "page",
		"ComicInfo.xml": `<ComicInfo><Series>Saga</Series><Title>From CIX</Title></ComicInfo>`,
		"CoMet.xml": `<comet xmlns:comet="http://www.denvog.com/comet/"><title>From CoMet</title><publisher>Image</publisher></comet>`,
	}, `{"ComicBookInfo/1.0":{"issue":"7"}}`)
	tagger, err := New(WithZip(path))
	require.NoError(t, err)

	md, err := tagger.ReadAll()
	require.NoError(t, err)
	require.NotNil(t, md.Title)
	assert.Equal(t, "From CIX", *md.Title)
	require.NotNil(t, md.Publisher)
	assert.Equal(t, "Image", *md.Publisher)
	require.NotNil(t, md.Issue)
	assert.Equal(t, "7", *md.Issue)
}

func TestReadAllFilenameFallback(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Monstress #44 (2024).cbz")
	f, err := os.Create(path)
	require.NoError(t, err)
	w := zip.NewWriter(f)
	fw, err := w.Create("p001.jpg")
	require.NoError(t, err)
	_, err = fw.Write([]byte("page"))
	require.NoError(t, err)
	cw, err := w.Create("ComicInfo.xml")
	require.NoError(t, err)
	_, err = cw.Write([]byte(`<ComicInfo><Series>Monstress</Series><Number>45</Number></ComicInfo>`))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())

	tagger, err := New(WithZip(path), WithFilenameParsing())
	require.NoError(t, err)

	md, err := tagger.ReadAll()
	require.NoError(t, err)
	// The tag block's issue beats the file name's; the file name's year
	// survives because no block mentions one.
	require.NotNil(t, md.Issue)
	assert.Equal(t, "45", *md.Issue)
	require.NotNil(t, md.Year)
	assert.Equal(t, 2024, *md.Year)
}

func TestReadAllFilenameOnlyArchive(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Watchmen #3 (1986).cbz")
	f, err := os.Create(path)
	require.NoError(t, err)
	w := zip.NewWriter(f)
	fw, err := w.Create("p001.jpg")
	require.NoError(t, err)
	_, err = fw.Write([]byte("page"))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())

	tagger, err := New(WithZip(path), WithFilenameParsing())
	require.NoError(t, err)

	md, err := tagger.ReadAll()
	require.NoError(t, err)
	assert.False(t, md.IsEmpty)
	require.NotNil(t, md.Series)
	assert.Equal(t, "Watchmen", *md.Series)
	require.NotNil(t, md.Issue)
	assert.Equal(t, "3", *md.Issue)
}

func TestReadAllUnparseableNameStillNotFound(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "-.cbz")
	f, err := os.Create(path)
	require.NoError(t, err)
	w := zip.NewWriter(f)
	fw, err := w.Create("p001.jpg")
	require.NoError(t, err)
	_, err = fw.Write([]byte("page"))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())

	tagger, err := New(WithZip(path), WithFilenameParsing())
	require.NoError(t, err)

	_, err = tagger.ReadAll()
	assert.True(t, errors.IsNotFound(err))
}

func TestReadAllEmptyArchive(t *testing.T) {
	path := newTestZip(t, map[string]string{"p001.jpg": "page"}, "")
	tagger, err := New(WithZip(path))
	require.NoError(t, err)

	_, err = tagger.ReadAll()
	assert.True(t, errors.IsNotFound(err))
}

func TestWriteRoundTrip(t *testing.T) {
	path := newTestZip(t, map[string]string{"p001.jpg": "page"}, "")
	tagger, err := New(WithZip(path))
	require.NoError(t, err)

	md := metadata.New()
	md.Series = metadata.Str("Monstress")
	md.Issue = metadata.Str("12")
	md.AddCredit("Marjorie Liu", "Writer", true)

	for _, style := range archive.Styles() {
		require.NoError(t, tagger.Write(md, style))
	}

	styles, err := tagger.Styles()
	require.NoError(t, err)
	assert.Equal(t, []archive.TagStyle{archive.StyleCoMet, archive.StyleCBI, archive.StyleCIX}, styles)

	for _, style := range archive.Styles() {
		got, err := tagger.Read(style)
		require.NoError(t, err, style)
		require.NotNil(t, got.Series, style)
		assert.Equal(t, "Monstress", *got.Series, style)
		require.NotNil(t, got.Issue, style)
		assert.Equal(t, "12", *got.Issue, style)
	}
}

func TestWritePreservesForeignElements(t *testing.T) {
	path := newTestZip(t, map[string]string{
		"p001.jpg":      "page",
		"ComicInfo.xml": `<ComicInfo><Series>Old</Series><SomeTool extra="1">data</SomeTool></ComicInfo>`,
	}, "")
	tagger, err := New(WithZip(path))
	require.NoError(t, err)

	md := metadata.New()
	md.Series = metadata.Str("New")
	require.NoError(t, tagger.Write(md, archive.StyleCIX))

	raw, err := tagger.Archiver().ReadTagBlock(archive.StyleCIX)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "<Series>New</Series>")
	assert.Contains(t, string(raw), "SomeTool")
}

func TestRemove(t *testing.T) {
	path := newTestZip(t, map[string]string{
		"p001.jpg":      "page",
		"ComicInfo.xml": `<ComicInfo><Series>Saga</Series></ComicInfo>`,
	}, "")
	tagger, err := New(WithZip(path))
	require.NoError(t, err)

	require.NoError(t, tagger.Remove(archive.StyleCIX))
	_, err = tagger.Read(archive.StyleCIX)
	assert.True(t, errors.IsNotFound(err))

	// Idempotent.
	require.NoError(t, tagger.Remove(archive.StyleCIX))

	assert.ErrorIs(t, tagger.Remove(archive.TagStyle("pdf")), errors.ErrUnsupportedStyle)
}

func TestWithDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "001.png"), []byte("img"), 0o644))
	tagger, err := New(WithDir(dir))
	require.NoError(t, err)

	md := metadata.New()
	md.Series = metadata.Str("Paper Girls")
	require.NoError(t, tagger.Write(md, archive.StyleCBI))

	got, err := tagger.Read(archive.StyleCBI)
	require.NoError(t, err)
	require.NotNil(t, got.Series)
	assert.Equal(t, "Paper Girls", *got.Series)
}

func TestOverlaid(t *testing.T) {
	base := metadata.New()
	base.Series = metadata.Str("Saga")
	base.Title = metadata.Str("Chapter One")

	incoming := metadata.New()
	incoming.Title = metadata.Str("")
	incoming.Issue = metadata.Str("2")

	merged := Overlaid(base, incoming)
	require.NotNil(t, merged.Series)
	assert.Equal(t, "Saga", *merged.Series)
	assert.Nil(t, merged.Title)
	require.NotNil(t, merged.Issue)
	assert.Equal(t, "2", *merged.Issue)

	// Inputs untouched.
	require.NotNil(t, base.Title)
	assert.Equal(t, "Chapter One", *base.Title)
}
