// Package filename extracts comic metadata from archive file names.
//
// Parsing is heuristic and never fails: fields that cannot be recognized
// in the name are simply left absent, so the result is safe to feed into
// an overlay as a low-priority source.
package filename

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/inkdex/comicmeta/pkg/issuenum"
	"github.com/inkdex/comicmeta/pkg/metadata"
)

var (
	yearPattern   = regexp.MustCompile(`\((19|20)\d{2}\)`)
	ofCountRe     = regexp.MustCompile(`(?i)\(\s*of\s+(\d+)\s*\)`)
	volumePattern = regexp.MustCompile(`(?i)\b(?:v|vol\.?|volume)\s*(\d+)\b`)
	issueHashRe   = regexp.MustCompile(`#\s*([0-9]+(?:\.[0-9]+)?[a-zA-Z]*)`)
	trailingNumRe = regexp.MustCompile(`\b([0-9]+(?:\.[0-9]+)?)\s*$`)
	parenGroupRe  = regexp.MustCompile(`\([^)]*\)`)
	bracketRe     = regexp.MustCompile(`\[[^]]*\]`)
	spacesRe      = regexp.MustCompile(`\s+`)
)

// Parse extracts series, issue, volume, year, and issue count from a
// comic archive file name such as "Series v2 #012 (of 25) (2024).cbz".
// The returned metadata has TagOrigin set to OriginFilename and only the
// recognized fields populated.
func Parse(name string) *metadata.GenericMetadata {
	md := metadata.New()
	md.TagOrigin = metadata.OriginFilename

	base := filepath.Base(name)
	if ext := filepath.Ext(base); isArchiveExt(ext) {
		base = strings.TrimSuffix(base, ext)
	}
	base = strings.ReplaceAll(base, "_", " ")

	rest := base

	if m := yearPattern.FindString(rest); m != "" {
		if y, err := strconv.Atoi(strings.Trim(m, "()")); err == nil {
			md.Year = metadata.Int(y)
		}
	}

	if m := ofCountRe.FindStringSubmatch(rest); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			md.IssueCount = metadata.Int(n)
		}
	}

	// Bracketed and parenthesized groups carry year, count, scan tags;
	// none of them belong in the series or issue fields.
	rest = parenGroupRe.ReplaceAllString(rest, " ")
	rest = bracketRe.ReplaceAllString(rest, " ")

	if m := volumePattern.FindStringSubmatchIndex(rest); m != nil {
		if v, err := strconv.Atoi(rest[m[2]:m[3]]); err == nil {
			md.Volume = metadata.Int(v)
		}
		rest = rest[:m[0]] + " " + rest[m[1]:]
	}

	issue := ""
	if m := issueHashRe.FindStringSubmatchIndex(rest); m != nil {
		issue = rest[m[2]:m[3]]
		rest = rest[:m[0]]
	} else if m := trailingNumRe.FindStringSubmatchIndex(strings.TrimSpace(rest)); m != nil {
		trimmed := strings.TrimSpace(rest)
		issue = trimmed[m[2]:m[3]]
		rest = trimmed[:m[0]]
	}
	if issue != "" {
		md.Issue = metadata.Str(issuenum.Normalize(issue))
	}

	series := strings.Trim(spacesRe.ReplaceAllString(rest, " "), " -")
	if series != "" {
		md.Series = metadata.Str(series)
	}

	if md.Series != nil || md.Issue != nil || md.Volume != nil || md.Year != nil || md.IssueCount != nil {
		md.IsEmpty = false
	}

	return md
}

func isArchiveExt(ext string) bool {
	switch strings.ToLower(ext) {
	case ".cbz", ".cbr", ".cb7", ".cbt", ".zip", ".rar", ".7z":
		return true
	}
	return false
}
