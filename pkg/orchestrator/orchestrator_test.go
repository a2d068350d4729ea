package orchestrator

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-datagen/pkg/infer"
	"github.com/goliatone/go-datagen/pkg/sandbox"
	"github.com/goliatone/go-datagen/pkg/schema"
	"github.com/goliatone/go-datagen/pkg/synth"
)

const countedProgram = `
function generate(count, fields) {
	var rows = [];
	for (var i = 0; i < count; i++) {
		rows.push({row: i});
	}
	return rows;
}
`

// countingSynthesizer records invocations so cache behavior is observable.
type countingSynthesizer struct {
	calls    int
	response string
	err      error
}

func (s *countingSynthesizer) Synthesize(_ context.Context, _ synth.Request) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func TestGenerateLocalScenario(t *testing.T) {
	o := New()
	rows, err := o.Generate(context.Background(), Request{
		Sample: []byte(`{"id":1001,"rating":4.5}`),
		Count:  3,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("len(rows) = %d, want 3", len(rows))
	}

	for i, row := range rows {
		if got := row["id"]; got != float64(1001+i) {
			t.Fatalf("row %d id = %v, want %d", i, got, 1001+i)
		}
		rating := row["rating"].(float64)
		if rating < 0 || rating > 9 {
			t.Fatalf("row %d rating = %v, want in [0,9]", i, rating)
		}
	}
}

func TestGenerateRejectsMalformedSample(t *testing.T) {
	_, err := New().Generate(context.Background(), Request{Sample: []byte(`{"a":`), Count: 1})
	var perr *infer.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v, want *infer.ParseError", err)
	}
}

func TestGenerateDelegatedCachesProgram(t *testing.T) {
	synthesizer := &countingSynthesizer{response: "```javascript\n" + countedProgram + "\n```"}
	o := New(WithSynthesizer(synthesizer))

	req := Request{
		Sample: []byte(`{"id":1}`),
		Fields: []schema.FieldConfig{{Key: "id", Type: schema.FieldTypeNumber, Strategy: schema.StrategyIncrement}},
		Count:  2,
		Mode:   ModeDelegated,
	}

	rows, err := o.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}

	// Second run with a different count reuses the cached program verbatim.
	req.Count = 5
	rows, err = o.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(rows) != 5 {
		t.Fatalf("len(rows) = %d, want 5", len(rows))
	}
	if synthesizer.calls != 1 {
		t.Fatalf("synthesizer calls = %d, want 1 (cache reuse)", synthesizer.calls)
	}
}

func TestGenerateDelegatedResynthesizesOnSampleChange(t *testing.T) {
	synthesizer := &countingSynthesizer{response: countedProgram}
	o := New(WithSynthesizer(synthesizer))

	fields := []schema.FieldConfig{{Key: "id", Type: schema.FieldTypeNumber, Strategy: schema.StrategyIncrement}}
	req := Request{Sample: []byte(`{"id":1}`), Fields: fields, Count: 1, Mode: ModeDelegated}

	if _, err := o.Generate(context.Background(), req); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	req.Sample = []byte(`{"id":2}`)
	if _, err := o.Generate(context.Background(), req); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if synthesizer.calls != 2 {
		t.Fatalf("synthesizer calls = %d, want 2 (sample change)", synthesizer.calls)
	}
}

func TestGenerateDelegatedResynthesizesOnInstructionChange(t *testing.T) {
	synthesizer := &countingSynthesizer{response: countedProgram}
	o := New(WithSynthesizer(synthesizer))

	fields := []schema.FieldConfig{{Key: "id", Type: schema.FieldTypeNumber, Strategy: schema.StrategyIncrement}}
	req := Request{Sample: []byte(`{"id":1}`), Fields: fields, Count: 1, Mode: ModeDelegated}

	if _, err := o.Generate(context.Background(), req); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	req.Instructions = "make ids look like order numbers"
	if _, err := o.Generate(context.Background(), req); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if synthesizer.calls != 2 {
		t.Fatalf("synthesizer calls = %d, want 2 (instruction change)", synthesizer.calls)
	}
}

func TestGenerateDelegatedSynthesisFailure(t *testing.T) {
	synthesizer := &countingSynthesizer{err: errors.New("upstream unavailable")}
	o := New(WithSynthesizer(synthesizer))

	req := Request{
		Fields: []schema.FieldConfig{{Key: "id", Type: schema.FieldTypeNumber, Strategy: schema.StrategyIncrement}},
		Count:  1,
		Mode:   ModeDelegated,
	}

	_, err := o.Generate(context.Background(), req)
	var serr *synth.SynthesisError
	if !errors.As(err, &serr) {
		t.Fatalf("error = %v, want *synth.SynthesisError", err)
	}

	// No cached program was written: the next run synthesizes again.
	synthesizer.err = nil
	synthesizer.response = countedProgram
	if _, err := o.Generate(context.Background(), req); err != nil {
		t.Fatalf("Generate after retry: %v", err)
	}
	if synthesizer.calls != 2 {
		t.Fatalf("synthesizer calls = %d, want 2", synthesizer.calls)
	}
}

func TestGenerateDelegatedEmptyResponse(t *testing.T) {
	synthesizer := &countingSynthesizer{response: "```\n```"}
	o := New(WithSynthesizer(synthesizer))

	_, err := o.Generate(context.Background(), Request{
		Fields: []schema.FieldConfig{{Key: "id", Type: schema.FieldTypeNumber, Strategy: schema.StrategyIncrement}},
		Count:  1,
		Mode:   ModeDelegated,
	})
	var serr *synth.SynthesisError
	if !errors.As(err, &serr) {
		t.Fatalf("error = %v, want *synth.SynthesisError", err)
	}
}

func TestGenerateDelegatedExecutionFailureKeepsCache(t *testing.T) {
	synthesizer := &countingSynthesizer{
		response: `function generate(count, fields) { return "nope"; }`,
	}
	o := New(WithSynthesizer(synthesizer))

	req := Request{
		Fields: []schema.FieldConfig{{Key: "id", Type: schema.FieldTypeNumber, Strategy: schema.StrategyIncrement}},
		Count:  1,
		Mode:   ModeDelegated,
	}

	_, err := o.Generate(context.Background(), req)
	var execErr *sandbox.ExecutionError
	if !errors.As(err, &execErr) {
		t.Fatalf("error = %v, want *sandbox.ExecutionError", err)
	}

	// The broken program stays cached; the caller decides when to force
	// re-synthesis.
	if _, err := o.Generate(context.Background(), req); err == nil {
		t.Fatal("expected repeated execution failure from cached program")
	}
	if synthesizer.calls != 1 {
		t.Fatalf("synthesizer calls = %d, want 1", synthesizer.calls)
	}

	o.InvalidateProgram()
	synthesizer.response = countedProgram
	if _, err := o.Generate(context.Background(), req); err != nil {
		t.Fatalf("Generate after invalidation: %v", err)
	}
	if synthesizer.calls != 2 {
		t.Fatalf("synthesizer calls = %d, want 2 after forced re-synthesis", synthesizer.calls)
	}
}

func TestGenerateDelegatedWithoutSynthesizer(t *testing.T) {
	_, err := New().Generate(context.Background(), Request{
		Fields: []schema.FieldConfig{{Key: "id", Type: schema.FieldTypeNumber, Strategy: schema.StrategyIncrement}},
		Mode:   ModeDelegated,
	})
	if err == nil {
		t.Fatal("expected error without synthesizer")
	}
}

func TestApplyFieldEdit(t *testing.T) {
	synthesizer := &countingSynthesizer{response: countedProgram}
	o := New(WithSynthesizer(synthesizer))

	fields := []schema.FieldConfig{
		{
			Key:      "id",
			Type:     schema.FieldTypeNumber,
			Strategy: schema.StrategyIncrement,
			Options:  &schema.FieldOptions{Start: schema.Float64(1)},
		},
	}
	req := Request{Sample: []byte(`{"id":1}`), Fields: fields, Count: 1, Mode: ModeDelegated}
	if _, err := o.Generate(context.Background(), req); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	// Parametric edit: cache survives.
	parametric := fields[0]
	parametric.Options = &schema.FieldOptions{Start: schema.Float64(500)}
	next, structural, err := o.ApplyFieldEdit(fields, "id", parametric)
	if err != nil {
		t.Fatalf("ApplyFieldEdit: %v", err)
	}
	if structural {
		t.Fatal("option-only edit must be parametric")
	}
	req.Fields = next
	if _, err := o.Generate(context.Background(), req); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if synthesizer.calls != 1 {
		t.Fatalf("synthesizer calls = %d, want 1 after parametric edit", synthesizer.calls)
	}

	// Structural edit: cache discarded.
	structuralEdit := next[0]
	structuralEdit.Strategy = schema.StrategyUUID
	next, structural, err = o.ApplyFieldEdit(next, "id", structuralEdit)
	if err != nil {
		t.Fatalf("ApplyFieldEdit: %v", err)
	}
	if !structural {
		t.Fatal("strategy change must be structural")
	}
	req.Fields = next
	if _, err := o.Generate(context.Background(), req); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if synthesizer.calls != 2 {
		t.Fatalf("synthesizer calls = %d, want 2 after structural edit", synthesizer.calls)
	}
}

func TestApplyFieldEditUnknownKey(t *testing.T) {
	o := New()
	_, _, err := o.ApplyFieldEdit(nil, "missing", schema.FieldConfig{Key: "missing"})
	if err == nil {
		t.Fatal("expected unknown field error")
	}
}
