// Package clientslug converts between a business display name plus numeric
// client ID and the single URL path segment that identifies a client site.
//
// A slug is the normalized name immediately followed by the decimal ID, with
// no separator: "Dr. Juan García" + 43 -> "drjuangarcia43". Decoding takes the
// longest trailing digit run that still leaves a non-empty prefix, so a name
// that itself ends in digits is ambiguous ("Store 24" + 7 decodes as 247).
package clientslug

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/sundayezeilo/websitio/internal/errx"
)

var (
	ErrNegativeID = errors.New("client id must be non-negative")
	ErrEmptyName  = errors.New("business name has no slug characters")
)

var slugPattern = regexp.MustCompile(`^(.+?)(\d+)$`)

// Parsed is the result of decoding a slug.
// When HasID is false, Name holds the whole input and ID is zero.
type Parsed struct {
	Name  string
	ID    int64
	HasID bool
}

// Normalize lower-cases name with full Unicode case folding, strips
// diacritics and drops everything outside [a-z0-9].
func Normalize(name string) string {
	// transform.Chain holds state, so build one per call.
	t := transform.Chain(cases.Fold(), norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	// None of these transformers fail on a string source.
	folded, _, _ := transform.String(t, name)

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Encode returns Normalize(name) followed by the decimal id.
func Encode(name string, id int64) (string, error) {
	const op = "clientslug.Encode"

	if id < 0 {
		return "", errx.E(op, errx.Invalid, ErrNegativeID)
	}
	fragment := Normalize(name)
	if fragment == "" {
		return "", errx.E(op, errx.Invalid, ErrEmptyName)
	}
	return fragment + strconv.FormatInt(id, 10), nil
}

// Canonical is Encode for callers that only need to know whether a slug exists.
func Canonical(name string, id int64) (string, bool) {
	slug, err := Encode(name, id)
	if err != nil {
		return "", false
	}
	return slug, true
}

// Decode splits slug into its name fragment and trailing ID.
// It never fails: a slug without a usable digit suffix comes back with HasID false.
func Decode(slug string) Parsed {
	m := slugPattern.FindStringSubmatch(slug)
	if m == nil {
		return Parsed{Name: slug}
	}

	id, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil {
		// digit run wider than int64
		return Parsed{Name: slug}
	}
	return Parsed{Name: m[1], ID: id, HasID: true}
}

// Validate reports whether slug decodes to an ID and equals the encoding of (name, id).
func Validate(slug, name string, id int64) bool {
	if !Decode(slug).HasID {
		return false
	}
	want, err := Encode(name, id)
	if err != nil {
		return false
	}
	return want == slug
}
