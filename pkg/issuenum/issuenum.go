// Package issuenum models comic issue numbers, which are strings with an
// optional numeric core: "1", "001", "12.1", "12.1a", "-1", "Annual".
// It provides the canonical string form used by the codecs ("001" becomes
// "1", "12.1" stays "12.1") and a numeric-aware total order so "2" sorts
// before "10".
package issuenum

import (
	"strconv"
	"strings"
)

// Issue is a parsed issue number: an optional numeric core plus whatever
// trailed it. The zero value represents an absent issue number.
type Issue struct {
	raw    string
	num    float64
	hasNum bool
	suffix string
}

// Parse splits an issue string into its numeric core and suffix.
// It never fails; input with no numeric core ("Annual") parses to an Issue
// whose canonical form is the trimmed input unchanged.
func Parse(s string) Issue {
	raw := strings.TrimSpace(s)
	iss := Issue{raw: raw}
	if raw == "" {
		return iss
	}

	// Longest prefix that still parses as a number: optional minus, digits,
	// at most one decimal point.
	end := 0
	seenDigit := false
	seenDot := false
scan:
	for i, r := range raw {
		switch {
		case r == '-' && i == 0:
		case r == '.' && !seenDot:
			seenDot = true
		case r >= '0' && r <= '9':
			seenDigit = true
		default:
			break scan
		}
		end = i + 1
	}

	if !seenDigit {
		return iss
	}

	core := raw[:end]
	// A trailing dot belongs to the suffix, not the number ("12." -> 12, ".").
	if strings.HasSuffix(core, ".") {
		core = core[:len(core)-1]
		end--
	}

	num, err := strconv.ParseFloat(core, 64)
	if err != nil {
		return iss
	}

	iss.num = num
	iss.hasNum = true
	iss.suffix = raw[end:]
	return iss
}

// Normalize returns the canonical string form of an issue number:
// leading zeros dropped, decimal fractions and non-numeric suffixes kept.
// Input with no numeric core is returned trimmed but otherwise unchanged.
// The empty string stays empty.
func Normalize(s string) string {
	return Parse(s).String()
}

// String returns the canonical string form of the issue.
func (i Issue) String() string {
	if !i.hasNum {
		return i.raw
	}
	return strconv.FormatFloat(i.num, 'f', -1, 64) + i.suffix
}

// AsFloat returns the numeric core, and whether one exists.
func (i Issue) AsFloat() (float64, bool) {
	return i.num, i.hasNum
}

// Compare orders issues numerically where possible: by numeric core first,
// then by suffix, so "2" < "10" and "12.1" < "12.1a". Issues with no
// numeric core sort after numbered ones, ordered by their raw string.
func (i Issue) Compare(other Issue) int {
	switch {
	case i.hasNum && other.hasNum:
		if i.num != other.num {
			if i.num < other.num {
				return -1
			}
			return 1
		}
		return strings.Compare(i.suffix, other.suffix)
	case i.hasNum:
		return -1
	case other.hasNum:
		return 1
	default:
		return strings.Compare(i.raw, other.raw)
	}
}

// Compare orders two issue strings per Issue.Compare.
func Compare(a, b string) int {
	return Parse(a).Compare(Parse(b))
}
