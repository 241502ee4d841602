package codec

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/garnizeh/skillbridge/pkg/repository"
	"github.com/qri-io/jsonschema"
)

// Kind names a list-valued column.
type Kind string

const (
	KindSkills    Kind = "skills"
	KindSkillGaps Kind = "skill_gaps"
	KindSteps     Kind = "steps"
)

var schemaSources = map[Kind]string{
	KindSkills: `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "array",
		"items": {"type": "string"}
	}`,
	KindSkillGaps: `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "array",
		"items": {
			"type": "object",
			"required": ["id", "skillName"],
			"properties": {
				"id": {"type": "string"},
				"skillName": {"type": "string"},
				"currentLevel": {"type": "number"},
				"requiredLevel": {"type": "number"},
				"priority": {"type": "string"}
			}
		}
	}`,
	KindSteps: `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "array",
		"items": {
			"type": "object",
			"required": ["id", "status"],
			"properties": {
				"id": {"type": "string"},
				"stepOrder": {"type": "integer"},
				"title": {"type": "string"},
				"description": {"type": "string"},
				"estHours": {"type": "integer"},
				"status": {"type": "string"}
			}
		}
	}`,
}

var (
	compileOnce sync.Once
	compiled    map[Kind]*jsonschema.Schema
	compileErr  error
)

func schemas() (map[Kind]*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		out := make(map[Kind]*jsonschema.Schema, len(schemaSources))
		for kind, src := range schemaSources {
			rs := &jsonschema.Schema{}
			if err := json.Unmarshal([]byte(src), rs); err != nil {
				compileErr = fmt.Errorf("compile schema %s: %w", kind, err)
				return
			}
			out[kind] = rs
		}
		compiled = out
	})
	return compiled, compileErr
}

// Validate checks stored text against the schema for kind. Empty text is
// valid; it decodes to an empty list.
func Validate(ctx context.Context, kind Kind, text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || trimmed == "null" {
		return nil
	}

	all, err := schemas()
	if err != nil {
		return err
	}
	rs, ok := all[kind]
	if !ok {
		return fmt.Errorf("unknown column kind %q", kind)
	}

	verrs, err := rs.ValidateBytes(ctx, []byte(trimmed))
	if err != nil {
		return fmt.Errorf("%w: %s: %v", repository.ErrMalformedEncoding, kind, err)
	}
	if len(verrs) > 0 {
		return fmt.Errorf("%w: %s: %s", repository.ErrMalformedEncoding, kind, verrs[0].Error())
	}
	return nil
}
