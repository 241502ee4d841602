// Package codec converts ordered list fields (course skills, skill gaps,
// roadmap steps) to and from the JSON text stored in a single column.
package codec

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/garnizeh/skillbridge/pkg/repository"
)

// Encode serializes items as a JSON array. A nil or empty slice encodes to "[]".
func Encode[T any](items []T) (string, error) {
	if len(items) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encode list: %w", err)
	}
	return string(b), nil
}

// Decode parses a JSON array. Empty text and the literal null decode to an
// empty, non-nil slice; anything else that is not an array of T fails with
// repository.ErrMalformedEncoding.
func Decode[T any](text string) ([]T, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || trimmed == "null" {
		return []T{}, nil
	}

	var out []T
	if err := json.Unmarshal([]byte(trimmed), &out); err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrMalformedEncoding, err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// DecodeNull is Decode for a nullable column; NULL decodes to an empty slice.
func DecodeNull[T any](col sql.NullString) ([]T, error) {
	if !col.Valid {
		return []T{}, nil
	}
	return Decode[T](col.String)
}

// DecodeChecked validates text against the schema of kind before decoding it.
func DecodeChecked[T any](ctx context.Context, kind Kind, col sql.NullString) ([]T, error) {
	if col.Valid {
		if err := Validate(ctx, kind, col.String); err != nil {
			return nil, err
		}
	}
	return DecodeNull[T](col)
}
