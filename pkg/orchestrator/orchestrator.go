// Package orchestrator coordinates the full pipeline from raw sample JSON to
// generated records, over either the local deterministic engine or the
// delegated synthesis path. It applies sensible defaults while remaining
// open to dependency injection for advanced callers.
package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-datagen/pkg/generate"
	"github.com/goliatone/go-datagen/pkg/infer"
	"github.com/goliatone/go-datagen/pkg/sandbox"
	"github.com/goliatone/go-datagen/pkg/schema"
	"github.com/goliatone/go-datagen/pkg/synth"
)

// Mode selects the generation path.
type Mode string

const (
	// ModeLocal runs the deterministic rule engine.
	ModeLocal Mode = "local"
	// ModeDelegated executes an externally synthesized generator program.
	ModeDelegated Mode = "delegated"
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithAnalyzer injects a custom schema analyzer, e.g. a delegated semantic
// analyzer replacing the local rules.
func WithAnalyzer(analyzer infer.Analyzer) Option {
	return func(o *Orchestrator) {
		o.analyzer = analyzer
	}
}

// WithEngine injects a custom local generation engine.
func WithEngine(engine *generate.Engine) Option {
	return func(o *Orchestrator) {
		o.engine = engine
	}
}

// WithSynthesizer injects the code-synthesis collaborator. The delegated
// mode is unavailable until one is configured.
func WithSynthesizer(synthesizer synth.Synthesizer) Option {
	return func(o *Orchestrator) {
		o.synthesizer = synthesizer
	}
}

// WithExecutor injects the sandboxed executor used for delegated programs.
func WithExecutor(executor sandbox.Executor) Option {
	return func(o *Orchestrator) {
		o.executor = executor
	}
}

// WithProgramCache injects a shared program cache, letting callers persist
// the slot across orchestrator instances (e.g. when replaying presets).
func WithProgramCache(cache *synth.ProgramCache) Option {
	return func(o *Orchestrator) {
		o.cache = cache
	}
}

// Orchestrator wires analyzer, engine, synthesizer, executor, and the
// cached-program slot into one pipeline. At most one synthesized program is
// held at a time; a new synthesis overwrites it.
type Orchestrator struct {
	analyzer    infer.Analyzer
	engine      *generate.Engine
	synthesizer synth.Synthesizer
	executor    sandbox.Executor
	cache       *synth.ProgramCache
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations; the
// synthesizer has no built-in and stays nil until injected.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	if o.analyzer == nil {
		o.analyzer = infer.NewRules()
	}
	if o.engine == nil {
		o.engine = generate.New()
	}
	if o.executor == nil {
		o.executor = sandbox.NewGojaExecutor()
	}
	if o.cache == nil {
		o.cache = synth.NewProgramCache()
	}
	return o
}

// Request describes one generation run.
type Request struct {
	// Sample is the raw sample JSON. Required when Fields is empty; in
	// delegated mode it also keys the cached program.
	Sample []byte

	// Fields is the live field configuration. When empty it is inferred
	// from Sample.
	Fields []schema.FieldConfig

	// Count is the number of records to generate.
	Count int

	// Mode selects local or delegated generation. Empty means local.
	Mode Mode

	// Instructions carries free-text guidance for the synthesis
	// collaborator. Ignored in local mode.
	Instructions string
}

// Analyze runs schema inference over raw sample text.
func (o *Orchestrator) Analyze(ctx context.Context, sample []byte) (schema.AnalysisResult, error) {
	return o.analyzer.Analyze(ctx, sample)
}

// Generate produces records for the request. Either the full record array is
// returned or an error, never partial output.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]map[string]any, error) {
	fields := req.Fields
	if len(fields) == 0 {
		result, err := o.analyzer.Analyze(ctx, req.Sample)
		if err != nil {
			return nil, err
		}
		fields = result.Fields
	}
	if err := schema.Validate(fields); err != nil {
		return nil, err
	}

	switch req.Mode {
	case "", ModeLocal:
		return o.engine.Generate(req.Count, fields)
	case ModeDelegated:
		return o.generateDelegated(ctx, req, fields)
	default:
		return nil, fmt.Errorf("orchestrator: unknown mode %q", req.Mode)
	}
}

// generateDelegated reuses the cached program when the sample and
// instructions still match, synthesizing a fresh one otherwise. Execution
// failures leave the cached program in place so the caller can decide
// whether to force re-synthesis.
func (o *Orchestrator) generateDelegated(ctx context.Context, req Request, fields []schema.FieldConfig) ([]map[string]any, error) {
	if o.synthesizer == nil {
		return nil, errors.New("orchestrator: delegated mode requires a synthesizer")
	}

	sampleText := string(req.Sample)
	source, cached := o.cache.Get(sampleText, req.Instructions)
	if !cached {
		response, err := o.synthesizer.Synthesize(ctx, synth.Request{
			Fields:       fields,
			SampleText:   sampleText,
			Instructions: req.Instructions,
		})
		if err != nil {
			var serr *synth.SynthesisError
			if errors.As(err, &serr) {
				return nil, err
			}
			return nil, &synth.SynthesisError{Err: err}
		}
		source = synth.StripCodeFence(response)
		if source == "" {
			return nil, &synth.SynthesisError{Err: errors.New("collaborator returned empty program source")}
		}
		o.cache.Put(source, sampleText, req.Instructions)
	}

	return o.executor.Execute(ctx, source, req.Count, fields)
}

// ApplyFieldEdit replaces the field identified by key with updated and
// reports whether the edit was structural. Structural edits discard the
// cached program; parametric edits keep it, since a conforming program
// re-reads option values on every execution.
func (o *Orchestrator) ApplyFieldEdit(fields []schema.FieldConfig, key string, updated schema.FieldConfig) ([]schema.FieldConfig, bool, error) {
	index := -1
	for i, field := range fields {
		if field.Key == key {
			index = i
			break
		}
	}
	if index < 0 {
		return nil, false, fmt.Errorf("orchestrator: unknown field %q", key)
	}

	next := make([]schema.FieldConfig, len(fields))
	copy(next, fields)
	next[index] = updated
	if err := schema.Validate(next); err != nil {
		return nil, false, err
	}

	structural := o.cache.InvalidateOnEdit(fields[index], updated)
	return next, structural, nil
}

// InvalidateProgram discards any cached program, forcing the next delegated
// run to re-synthesize.
func (o *Orchestrator) InvalidateProgram() {
	o.cache.Invalidate()
}
