package sandbox

import (
	"context"
	"encoding/json"

	"github.com/dop251/goja"

	"github.com/goliatone/go-datagen/pkg/schema"
)

// entryPoint is the function name every synthesized program must define.
const entryPoint = "generate"

// GojaExecutor runs programs in a fresh goja VM per call. Each VM sees only
// the two contract arguments: no host functions, no filesystem, no network.
type GojaExecutor struct{}

// NewGojaExecutor constructs the built-in ECMAScript executor.
func NewGojaExecutor() *GojaExecutor {
	return &GojaExecutor{}
}

// Execute implements Executor. Context cancellation interrupts the VM, so a
// runaway program cannot outlive its caller.
func (x *GojaExecutor) Execute(ctx context.Context, source string, count int, fields []schema.FieldConfig) ([]map[string]any, error) {
	vm := goja.New()

	if ctx != nil {
		done := make(chan struct{})
		defer close(done)
		go func() {
			select {
			case <-ctx.Done():
				vm.Interrupt(ctx.Err())
			case <-done:
			}
		}()
	}

	if _, err := vm.RunString(source); err != nil {
		return nil, &ExecutionError{Err: err}
	}

	entry, ok := goja.AssertFunction(vm.Get(entryPoint))
	if !ok {
		return nil, execError("program does not define %s(count, fields)", entryPoint)
	}

	fieldsValue, err := fieldsToValue(vm, fields)
	if err != nil {
		return nil, &ExecutionError{Err: err}
	}

	result, err := entry(goja.Undefined(), vm.ToValue(count), fieldsValue)
	if err != nil {
		return nil, &ExecutionError{Err: err}
	}

	return exportRows(result)
}

// fieldsToValue hands the live field configuration to the VM as plain
// objects, keyed exactly as the JSON wire form so programs read the same
// names in both modes.
func fieldsToValue(vm *goja.Runtime, fields []schema.FieldConfig) (goja.Value, error) {
	raw, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}
	var plain any
	if err := json.Unmarshal(raw, &plain); err != nil {
		return nil, err
	}
	return vm.ToValue(plain), nil
}

func exportRows(result goja.Value) ([]map[string]any, error) {
	exported := result.Export()
	elements, ok := exported.([]any)
	if !ok {
		return nil, execError("program returned %T, want an array of records", exported)
	}

	rows := make([]map[string]any, 0, len(elements))
	for i, element := range elements {
		record, ok := element.(map[string]any)
		if !ok {
			return nil, execError("program row %d is %T, want an object", i, element)
		}
		rows = append(rows, record)
	}
	return rows, nil
}
