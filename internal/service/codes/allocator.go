// Package codes hands out human-readable sequential codes such as SKU-001.
//
// There is no counter record: the next code is re-derived from every visible
// code on each call, and the store's unique index arbitrates between
// concurrent callers that derived the same value.
package codes

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/domain/models"
	"github.com/mamadbah2/stockroom/internal/repository"
)

// DefaultPadWidth is the minimum number of digits after the prefix.
const DefaultPadWidth = 3

// DefaultMaxAttempts bounds how often a creation is retried after losing a race.
const DefaultMaxAttempts = 5

// Namespace identifies one allocation sequence.
type Namespace struct {
	Prefix string
	Width  int
}

// CodeSource returns every code currently visible under the prefix,
// including retired ones.
type CodeSource func(ctx context.Context, prefix string) ([]string, error)

// InsertFunc persists a record under the candidate code. It must return an
// error wrapping repository.ErrDuplicateKey when the code is already taken.
type InsertFunc func(ctx context.Context, code string) error

// AllocateCode returns prefix + (max numeric suffix + 1), zero-padded to width.
// Codes that are not prefix followed by digits are ignored.
func AllocateCode(prefix string, width int, existing []string) string {
	var highest uint64
	for _, code := range existing {
		n, ok := parseSuffix(prefix, code)
		if ok && n > highest {
			highest = n
		}
	}
	if width < 1 {
		width = 1
	}
	return fmt.Sprintf("%s%0*d", prefix, width, highest+1)
}

func parseSuffix(prefix, code string) (uint64, bool) {
	if !strings.HasPrefix(code, prefix) {
		return 0, false
	}
	digits := code[len(prefix):]
	if digits == "" {
		return 0, false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Allocator runs the scan, compute, insert loop.
type Allocator struct {
	maxAttempts int
	logger      *zap.Logger
}

// NewAllocator builds an allocator. A non-positive budget falls back to DefaultMaxAttempts.
func NewAllocator(maxAttempts int, logger *zap.Logger) *Allocator {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Allocator{maxAttempts: maxAttempts, logger: logger}
}

// Assign allocates a fresh code in ns and inserts the record under it.
// Nothing is written unless insert succeeds, so a failed Assign leaves the store untouched.
func (a *Allocator) Assign(ctx context.Context, ns Namespace, source CodeSource, insert InsertFunc) (string, error) {
	for attempt := 1; attempt <= a.maxAttempts; attempt++ {
		existing, err := source(ctx, ns.Prefix)
		if err != nil {
			return "", models.NewStoreError("list codes", err)
		}

		code := AllocateCode(ns.Prefix, ns.Width, existing)
		err = insert(ctx, code)
		if err == nil {
			return code, nil
		}
		if !errors.Is(err, repository.ErrDuplicateKey) {
			return "", models.NewStoreError("insert", err)
		}

		a.logger.Debug("code taken concurrently, retrying",
			zap.String("prefix", ns.Prefix),
			zap.String("code", code),
			zap.Int("attempt", attempt))
	}

	a.logger.Warn("code allocation retries exhausted",
		zap.String("prefix", ns.Prefix),
		zap.Int("attempts", a.maxAttempts))
	return "", fmt.Errorf("%w: prefix %s after %d attempts", models.ErrAllocationRace, ns.Prefix, a.maxAttempts)
}

// Merge combines several code sources into one.
func Merge(sources ...CodeSource) CodeSource {
	return func(ctx context.Context, prefix string) ([]string, error) {
		var all []string
		for _, source := range sources {
			codes, err := source(ctx, prefix)
			if err != nil {
				return nil, err
			}
			all = append(all, codes...)
		}
		return all, nil
	}
}
