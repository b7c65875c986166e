package property

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// SlugChecker is the mapper's only storage dependency.
type SlugChecker interface {
	SlugExists(ctx context.Context, slug string) (bool, error)
}

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	nonSlugChars  = regexp.MustCompile(`[^a-z0-9-]+`)
	hyphenRun     = regexp.MustCompile(`-+`)
)

// Slugify derives a URL-safe identifier from a title: lower-case, whitespace
// runs collapsed to single hyphens, everything else non-alphanumeric dropped.
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = whitespaceRun.ReplaceAllString(s, "-")
	s = nonSlugChars.ReplaceAllString(s, "")
	s = hyphenRun.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// UniqueSlug slugifies the title and, when the slug is already taken, appends
// a millisecond timestamp as disambiguator.
func UniqueSlug(ctx context.Context, slugs SlugChecker, title string, now time.Time) (string, error) {
	slug := Slugify(title)
	if slug == "" {
		slug = "property"
	}

	exists, err := slugs.SlugExists(ctx, slug)
	if err != nil {
		return "", err
	}
	if !exists {
		return slug, nil
	}
	return fmt.Sprintf("%s-%d", slug, now.UnixMilli()), nil
}
