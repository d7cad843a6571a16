package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/gosimple/slug"
)

// slugExistsFunc reports whether a slug is already stored.
type slugExistsFunc func(ctx context.Context, slug string) (bool, error)

// availableSlug returns requested when it is free, otherwise requested
// with "-<unix seconds>" appended.
//
// The check is not atomic with the insert that follows. Two concurrent
// creates can still collide; the unique index then rejects the loser and
// the error surfaces as a 409.
func availableSlug(ctx context.Context, requested string, exists slugExistsFunc, now func() time.Time) (string, error) {
	taken, err := exists(ctx, requested)
	if err != nil {
		return "", err
	}
	if !taken {
		return requested, nil
	}

	return fmt.Sprintf("%s-%d", requested, now().Unix()), nil
}

// slugSet hands out slugs that are unique within one bulk document.
type slugSet struct {
	fallback string
	seen     map[string]bool
}

func newSlugSet(fallback string) *slugSet {
	return &slugSet{fallback: fallback, seen: map[string]bool{}}
}

// next keeps an explicit slug, or derives one from name, then suffixes
// -2, -3, ... until it has not been handed out before.
func (s *slugSet) next(explicit, name string) string {
	base := explicit
	if base == "" {
		base = slug.Make(name)
	}
	if base == "" {
		base = s.fallback
	}

	candidate := base
	for i := 2; s.seen[candidate]; i++ {
		candidate = base + "-" + strconv.Itoa(i)
	}
	s.seen[candidate] = true

	return candidate
}
