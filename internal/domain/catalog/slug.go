package catalog

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/archerandash/storefront/internal/domain/shared"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultProductSlug is used when a product title yields no slug characters
const DefaultProductSlug = "product"

// maxSlugAttempts bounds the suffix search in UniqueSlug
const maxSlugAttempts = 1000

var (
	whitespaceRun   = regexp.MustCompile(`\s+`)
	nonSlugChars    = regexp.MustCompile(`[^\w-]+`)
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// SlugExistsFunc reports whether a candidate slug is already taken by another record
type SlugExistsFunc func(ctx context.Context, candidate string) (bool, error)

// Slugify converts text into a URL slug made of [a-z0-9_-].
// Accented letters are folded to their base letter first.
func Slugify(text string) string {
	s := strings.ToLower(strings.TrimSpace(foldAccents(text)))
	s = whitespaceRun.ReplaceAllString(s, "-")
	s = nonSlugChars.ReplaceAllString(s, "")
	s = multipleHyphens.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// ProductSlug returns the base slug for a product title
func ProductSlug(title string) string {
	if s := Slugify(title); s != "" {
		return s
	}
	return DefaultProductSlug
}

// UniqueSlug returns the first of base, base-1, base-2, ... that is not taken.
func UniqueSlug(ctx context.Context, base string, exists SlugExistsFunc) (string, error) {
	candidate := base
	for i := 1; i <= maxSlugAttempts; i++ {
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("check slug %q: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return "", shared.NewDomainError("SLUG_EXHAUSTED", fmt.Sprintf("Could not find a free slug for %q", base))
}

func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}
