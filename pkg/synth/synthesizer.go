// Package synth defines the contract with the external code-synthesis
// collaborator: the request it receives, how its response is normalized into
// raw program source, and the single-slot cache that decides when a
// previously synthesized program may be reused.
package synth

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-datagen/pkg/schema"
)

// Request carries everything the collaborator needs to write a generator
// program: the live field configuration, the original sample text, and any
// free-text custom instructions.
type Request struct {
	Fields       []schema.FieldConfig
	SampleText   string
	Instructions string
}

// Synthesizer obtains generator program source from an external
// collaborator. The call is the pipeline's only suspension point: it is
// asynchronous, cancelable through ctx, and never retried automatically.
type Synthesizer interface {
	Synthesize(ctx context.Context, req Request) (string, error)
}

// SynthesizerFunc adapts a plain function to the Synthesizer interface.
type SynthesizerFunc func(ctx context.Context, req Request) (string, error)

// Synthesize implements Synthesizer.
func (f SynthesizerFunc) Synthesize(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}

// SynthesisError reports a collaborator that failed or returned empty
// content. No cached program is written when it occurs; the caller must
// retry synthesis explicitly.
type SynthesisError struct {
	Err error
}

func (e *SynthesisError) Error() string {
	return fmt.Sprintf("synth: synthesis failed: %v", e.Err)
}

func (e *SynthesisError) Unwrap() error { return e.Err }

// StripCodeFence removes surrounding Markdown code-fence markup from a
// collaborator response, returning raw program source. Responses without
// fences pass through trimmed.
func StripCodeFence(response string) string {
	trimmed := strings.TrimSpace(response)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	// Drop the opening fence line, including any language tag.
	newline := strings.Index(trimmed, "\n")
	if newline < 0 {
		return ""
	}
	trimmed = trimmed[newline+1:]

	trimmed = strings.TrimSpace(trimmed)
	trimmed = strings.TrimSuffix(trimmed, "```")
	return strings.TrimSpace(trimmed)
}
