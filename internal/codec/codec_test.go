package codec_test

import (
	"context"
	"database/sql"
	"errors"
	"reflect"
	"testing"

	"github.com/garnizeh/skillbridge/internal/codec"
	"github.com/garnizeh/skillbridge/pkg/models"
	"github.com/garnizeh/skillbridge/pkg/repository"
)

func TestEncode_EmptyIsArray(t *testing.T) {
	for _, in := range [][]string{nil, {}} {
		got, err := codec.Encode(in)
		if err != nil {
			t.Fatalf("Encode error: %v", err)
		}
		if got != "[]" {
			t.Fatalf("expected [] for empty input, got %q", got)
		}
	}
}

func TestRoundTrip_Skills(t *testing.T) {
	cases := [][]string{
		{},
		{"Swift", "SwiftUI", "iOS"},
		{"iOS", "Swift", "Swift"},
		{"Combine"},
	}
	for _, in := range cases {
		text, err := codec.Encode(in)
		if err != nil {
			t.Fatalf("Encode(%v) error: %v", in, err)
		}
		out, err := codec.Decode[string](text)
		if err != nil {
			t.Fatalf("Decode(%q) error: %v", text, err)
		}
		if !reflect.DeepEqual(in, out) {
			t.Fatalf("round trip mismatch: in=%v out=%v", in, out)
		}
	}
}

func TestRoundTrip_Steps(t *testing.T) {
	in := []models.RoadmapStep{
		{ID: "b", StepOrder: 2, Title: "SwiftUI", EstHours: 30, Status: models.StepPending},
		{ID: "a", StepOrder: 1, Title: "Swift", Description: "basics", EstHours: 20, Status: models.StepCompleted},
	}
	text, err := codec.Encode(in)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	if err := codec.Validate(context.Background(), codec.KindSteps, text); err != nil {
		t.Fatalf("encoded steps failed validation: %v", err)
	}
	out, err := codec.Decode[models.RoadmapStep](text)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("round trip mismatch: in=%+v out=%+v", in, out)
	}
}

func TestDecode_EmptyAndNull(t *testing.T) {
	for _, text := range []string{"", "   ", "null"} {
		out, err := codec.Decode[models.SkillGap](text)
		if err != nil {
			t.Fatalf("Decode(%q) error: %v", text, err)
		}
		if out == nil || len(out) != 0 {
			t.Fatalf("Decode(%q) expected empty non-nil slice, got %#v", text, out)
		}
	}

	out, err := codec.DecodeNull[string](sql.NullString{})
	if err != nil {
		t.Fatalf("DecodeNull error: %v", err)
	}
	if out == nil || len(out) != 0 {
		t.Fatalf("DecodeNull expected empty slice, got %#v", out)
	}
}

func TestDecode_Malformed(t *testing.T) {
	for _, text := range []string{"{", `{"id":"x"}`, `"Swift"`, "[1,2"} {
		if _, err := codec.Decode[string](text); !errors.Is(err, repository.ErrMalformedEncoding) {
			t.Fatalf("Decode(%q) expected ErrMalformedEncoding, got %v", text, err)
		}
	}
}

func TestValidate(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		name    string
		kind    codec.Kind
		text    string
		wantErr bool
	}{
		{name: "EmptySteps", kind: codec.KindSteps, text: "", wantErr: false},
		{name: "ValidSkills", kind: codec.KindSkills, text: `["Swift"]`, wantErr: false},
		{name: "SkillsNotStrings", kind: codec.KindSkills, text: `[1, 2]`, wantErr: true},
		{name: "StepMissingStatus", kind: codec.KindSteps, text: `[{"id":"a"}]`, wantErr: true},
		{name: "GapMissingName", kind: codec.KindSkillGaps, text: `[{"id":"a"}]`, wantErr: true},
		{name: "ValidGap", kind: codec.KindSkillGaps, text: `[{"id":"a","skillName":"SwiftUI","currentLevel":40,"requiredLevel":80,"priority":"High"}]`, wantErr: false},
		{name: "NotJSON", kind: codec.KindSteps, text: `[{`, wantErr: true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := codec.Validate(ctx, c.kind, c.text)
			if c.wantErr {
				if !errors.Is(err, repository.ErrMalformedEncoding) {
					t.Fatalf("expected ErrMalformedEncoding, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestDecodeChecked(t *testing.T) {
	ctx := context.Background()
	col := sql.NullString{String: `[{"id":"s1","stepOrder":1,"title":"t","description":"","estHours":2,"status":"Pending"}]`, Valid: true}
	steps, err := codec.DecodeChecked[models.RoadmapStep](ctx, codec.KindSteps, col)
	if err != nil {
		t.Fatalf("DecodeChecked error: %v", err)
	}
	if len(steps) != 1 || steps[0].ID != "s1" || steps[0].Status != models.StepPending {
		t.Fatalf("unexpected steps: %+v", steps)
	}

	bad := sql.NullString{String: `[{"title":"no id"}]`, Valid: true}
	if _, err := codec.DecodeChecked[models.RoadmapStep](ctx, codec.KindSteps, bad); !errors.Is(err, repository.ErrMalformedEncoding) {
		t.Fatalf("expected ErrMalformedEncoding, got %v", err)
	}
}
