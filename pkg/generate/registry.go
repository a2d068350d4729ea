package generate

import (
	"math/rand"
	"sync"

	"github.com/goliatone/go-datagen/pkg/schema"
)

// GeneratorFunc produces one value for a field on one row. Implementations
// read every parameter they need from the field's options so parametric
// edits take effect without re-registration.
type GeneratorFunc func(state *State, field schema.FieldConfig, rng *rand.Rand) any

// Registry maps strategies to generator functions. New strategies extend the
// mapping; the engine itself never branches on strategy names. The zero
// registry resolves nothing, use NewRegistry for the built-in table.
type Registry struct {
	mu         sync.RWMutex
	generators map[schema.Strategy]GeneratorFunc
}

// NewRegistry constructs a registry with the built-in strategy table
// registered.
func NewRegistry() *Registry {
	reg := &Registry{generators: make(map[schema.Strategy]GeneratorFunc)}
	reg.registerBuiltins()
	return reg
}

// Register adds or replaces the generator for a strategy. A nil function is
// ignored.
func (r *Registry) Register(strategy schema.Strategy, fn GeneratorFunc) {
	if r == nil || fn == nil || strategy == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.generators == nil {
		r.generators = make(map[schema.Strategy]GeneratorFunc)
	}
	r.generators[strategy] = fn
}

// Resolve returns the generator for a strategy. Unrecognized strategies fall
// back to static behavior so bulk generation stays robust against partially
// configured fields.
func (r *Registry) Resolve(strategy schema.Strategy) GeneratorFunc {
	if r != nil {
		r.mu.RLock()
		fn, ok := r.generators[strategy]
		r.mu.RUnlock()
		if ok {
			return fn
		}
	}
	return genStatic
}

// Strategies returns the registered strategy names, for discovery surfaces
// such as the CLI editor.
func (r *Registry) Strategies() []schema.Strategy {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]schema.Strategy, 0, len(r.generators))
	for strategy := range r.generators {
		out = append(out, strategy)
	}
	return out
}

func (r *Registry) registerBuiltins() {
	r.Register(schema.StrategyIncrement, genIncrement)
	r.Register(schema.StrategyRandomInt, genRandomInt)
	r.Register(schema.StrategyRandomFloat, genRandomFloat)
	r.Register(schema.StrategyEnum, genEnum)
	r.Register(schema.StrategyUUID, genUUID)
	r.Register(schema.StrategyName, genName)
	r.Register(schema.StrategyEmail, genEmail)
	r.Register(schema.StrategyDate, genDate)
	r.Register(schema.StrategyAddress, genAddress)
	r.Register(schema.StrategyPhone, genPhone)
	r.Register(schema.StrategyStatic, genStatic)
	r.Register(schema.StrategyRegex, genRegex)
	r.Register(schema.StrategySentence, genSentence)
	r.Register(schema.StrategyAIContext, genSentence)
}
