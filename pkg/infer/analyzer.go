// Package infer derives a field configuration list from a raw JSON sample.
// The local rule engine maps value shapes and key names to generation
// strategies; callers needing semantic analysis can supply their own
// Analyzer implementation instead.
package infer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-datagen/pkg/schema"
)

// Analyzer produces a field configuration list from raw sample text.
type Analyzer interface {
	Analyze(ctx context.Context, sample []byte) (schema.AnalysisResult, error)
}

// ParseError reports malformed or unusable sample text.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("infer: invalid sample: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// InferenceError reports a delegated analyzer that failed to produce a valid
// field configuration list. The local rule engine never returns it: given
// well-formed JSON it degrades to static/ai_context fallbacks instead.
type InferenceError struct {
	Err error
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("infer: analysis failed: %v", e.Err)
}

func (e *InferenceError) Unwrap() error { return e.Err }

// ParseSample decodes sample text into a single representative record and
// reports how many records the sample held. An object root counts as one; an
// array root contributes its first element and its length. Anything else is
// rejected with a ParseError.
func ParseSample(sample []byte) (map[string]any, int, error) {
	if len(bytes.TrimSpace(sample)) == 0 {
		return nil, 0, &ParseError{Err: fmt.Errorf("empty sample")}
	}

	var decoded any
	if err := json.Unmarshal(sample, &decoded); err != nil {
		return nil, 0, &ParseError{Err: err}
	}

	switch v := decoded.(type) {
	case map[string]any:
		return v, 1, nil
	case []any:
		if len(v) == 0 {
			return nil, 0, &ParseError{Err: fmt.Errorf("sample array is empty")}
		}
		record, ok := v[0].(map[string]any)
		if !ok {
			return nil, 0, &ParseError{Err: fmt.Errorf("sample array elements must be objects, got %T", v[0])}
		}
		return record, len(v), nil
	default:
		return nil, 0, &ParseError{Err: fmt.Errorf("sample root must be an object or an array of objects, got %T", decoded)}
	}
}
