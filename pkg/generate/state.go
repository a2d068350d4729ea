package generate

import "github.com/goliatone/go-datagen/pkg/schema"

// State holds the per-run counters used by increment-strategy fields. It is
// created at the start of a generation run, owned exclusively by that run,
// and discarded when the run ends; nothing persists it.
type State struct {
	counters map[string]float64
}

func newState(fields []schema.FieldConfig) *State {
	s := &State{counters: make(map[string]float64)}
	for _, field := range fields {
		if field.Strategy == schema.StrategyIncrement {
			s.counters[field.Key] = field.Options.StartOr(1)
		}
	}
	return s
}

// Next returns the current counter for key and advances it by step.
func (s *State) Next(key string, step float64) float64 {
	current := s.counters[key]
	s.counters[key] = current + step
	return current
}

// Reset returns the counter for key to start. Grouped runs call this at
// every group boundary so per-group sequences restart at their configured
// start, not at zero.
func (s *State) Reset(key string, start float64) {
	s.counters[key] = start
}

// Counter exposes the current value for key, primarily for tests.
func (s *State) Counter(key string) float64 {
	return s.counters[key]
}
