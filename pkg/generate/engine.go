// Package generate turns a field configuration list into bulk synthetic
// records through a strategy-driven, deterministic rule engine.
package generate

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/goliatone/go-datagen/pkg/flatten"
	"github.com/goliatone/go-datagen/pkg/schema"
)

// Option customises the engine configuration.
type Option func(*Engine)

// WithRegistry injects a custom strategy registry.
func WithRegistry(registry *Registry) Option {
	return func(e *Engine) {
		e.registry = registry
	}
}

// WithRandSource seeds the engine's random source, making runs reproducible.
func WithRandSource(source rand.Source) Option {
	return func(e *Engine) {
		e.rng = rand.New(source)
	}
}

// Engine generates nested records from a field configuration list. A single
// engine is not safe for concurrent Generate calls; runs are synchronous and
// sequential by design.
type Engine struct {
	registry *Registry
	rng      *rand.Rand
}

// New constructs an Engine applying any provided options. Missing
// dependencies are initialised with the built-in implementations.
func New(options ...Option) *Engine {
	e := &Engine{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	if e.registry == nil {
		e.registry = NewRegistry()
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return e
}

// Generate produces exactly count nested records. Fields are evaluated in
// list order for every row; rows are re-nested through the path codec before
// they are appended to the output.
func (e *Engine) Generate(count int, fields []schema.FieldConfig) ([]map[string]any, error) {
	if count < 0 {
		return nil, fmt.Errorf("generate: count must be >= 0, got %d", count)
	}
	if err := schema.Validate(fields); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, count)
	if count == 0 {
		return out, nil
	}

	state := newState(fields)
	for i := 0; i < count; i++ {
		row := flatten.NewMap()
		for _, field := range fields {
			if grouping := field.Options.GroupingConfig(); grouping != nil {
				row.Set(field.Key, e.groupValue(state, fields, field, grouping, i, count))
				continue
			}
			fn := e.registry.Resolve(field.Strategy)
			row.Set(field.Key, fn(state, field, e.rng))
		}
		out = append(out, flatten.Unflatten(row))
	}
	return out, nil
}

// groupValue picks the row's group value from the field's enumerated values
// and performs boundary resets. Group size is CountPerGroup for the fixed
// strategy and max(1, count/len(values)) for even distribution.
func (e *Engine) groupValue(state *State, fields []schema.FieldConfig, field schema.FieldConfig, grouping *schema.GroupingConfig, row, count int) any {
	values := field.Options.EnumValues()
	if len(values) == 0 {
		return enumPlaceholder
	}

	size := groupSize(grouping, count, len(values))
	if row > 0 && row%size == 0 {
		resetCounters(state, fields, grouping.ResetFields)
	}
	return values[(row/size)%len(values)]
}

func groupSize(grouping *schema.GroupingConfig, count, valueCount int) int {
	if grouping.Strategy == schema.GroupingFixed && grouping.CountPerGroup > 0 {
		return grouping.CountPerGroup
	}
	size := count / valueCount
	if size < 1 {
		size = 1
	}
	return size
}

// resetCounters restarts every listed increment field at its configured
// start value.
func resetCounters(state *State, fields []schema.FieldConfig, resetKeys []string) {
	for _, key := range resetKeys {
		for _, field := range fields {
			if field.Key == key && field.Strategy == schema.StrategyIncrement {
				state.Reset(key, field.Options.StartOr(1))
			}
		}
	}
}
