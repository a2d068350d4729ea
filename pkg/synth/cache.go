package synth

import (
	"crypto/sha256"
	"sync"

	"github.com/goliatone/go-datagen/pkg/schema"
)

// ProgramCache holds at most one synthesized program. The slot is keyed by
// the sample text and custom instructions it was synthesized against; a
// lookup with either changed misses, so a new synthesis overwrites the slot.
// Structural field edits invalidate it explicitly through InvalidateOnEdit.
// Parametric edits leave it untouched: a conforming program re-reads option
// values at execution time.
type ProgramCache struct {
	mu           sync.Mutex
	source       string
	sampleHash   [sha256.Size]byte
	instructions string
	valid        bool
}

// NewProgramCache constructs an empty cache slot.
func NewProgramCache() *ProgramCache {
	return &ProgramCache{}
}

// Get returns the cached program source when it was synthesized against the
// same sample text and instructions.
func (c *ProgramCache) Get(sampleText, instructions string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.valid {
		return "", false
	}
	if c.sampleHash != sha256.Sum256([]byte(sampleText)) || c.instructions != instructions {
		return "", false
	}
	return c.source, true
}

// Put stores program source for the given sample text and instructions,
// replacing whatever the slot held.
func (c *ProgramCache) Put(source, sampleText, instructions string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.source = source
	c.sampleHash = sha256.Sum256([]byte(sampleText))
	c.instructions = instructions
	c.valid = true
}

// Invalidate discards the cached program.
func (c *ProgramCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.source = ""
	c.valid = false
}

// InvalidateOnEdit discards the cached program iff the edit is structural.
// It reports whether invalidation happened.
func (c *ProgramCache) InvalidateOnEdit(oldField, newField schema.FieldConfig) bool {
	if !schema.StructuralChange(oldField, newField) {
		return false
	}
	c.Invalidate()
	return true
}
