package flatten

import (
	"sort"
	"strconv"
	"strings"
)

// Flatten walks a nested record and returns an ordered map keyed by
// dot-separated paths. Object keys are visited in sorted order so the result
// is deterministic regardless of map iteration order.
//
// Arrays are sampled by their first element only: a leading object recurses
// under an appended "0" segment, a leading scalar is stored verbatim under
// ".0", and empty arrays produce no entries. This is a known lossy
// approximation: elements past the first never survive flattening.
func Flatten(record map[string]any) *Map {
	out := NewMap()
	flattenObject(out, "", record)
	return out
}

func flattenObject(out *Map, prefix string, record map[string]any) {
	keys := make([]string, 0, len(record))
	for key := range record {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		flattenValue(out, joinPath(prefix, key), record[key])
	}
}

func flattenValue(out *Map, path string, value any) {
	switch v := value.(type) {
	case map[string]any:
		flattenObject(out, path, v)
	case []any:
		if len(v) == 0 {
			return
		}
		flattenValue(out, joinPath(path, "0"), v[0])
	default:
		out.Set(path, v)
	}
}

// Unflatten rebuilds a nested record from a flat map. A non-leading path
// segment becomes an array index iff it parses as a non-negative integer;
// otherwise it is an object key. The root is always an object, so a leading
// numeric segment is an object key, never an array index.
// Unflatten(Flatten(x)) reproduces x for any record whose arrays hold at
// most one element.
func Unflatten(flat *Map) map[string]any {
	root := make(map[string]any)
	for _, key := range flat.Keys() {
		value, _ := flat.Get(key)
		segments := strings.Split(key, ".")
		if len(segments) == 1 {
			root[segments[0]] = value
			continue
		}
		root[segments[0]] = assign(child(root[segments[0]], segments[1]), segments[1:], value)
	}
	return root
}

func assign(container any, segments []string, value any) any {
	segment := segments[0]
	if index, ok := arrayIndex(segment); ok {
		slice, _ := container.([]any)
		for len(slice) <= index {
			slice = append(slice, nil)
		}
		if len(segments) == 1 {
			slice[index] = value
			return slice
		}
		slice[index] = assign(child(slice[index], segments[1]), segments[1:], value)
		return slice
	}

	object, ok := container.(map[string]any)
	if !ok || object == nil {
		object = make(map[string]any)
	}
	if len(segments) == 1 {
		object[segment] = value
		return object
	}
	object[segment] = assign(child(object[segment], segments[1]), segments[1:], value)
	return object
}

// child returns the existing container for the next segment when its shape
// matches, or nil so assign creates a fresh one.
func child(existing any, nextSegment string) any {
	if _, ok := arrayIndex(nextSegment); ok {
		if slice, ok := existing.([]any); ok {
			return slice
		}
		return []any(nil)
	}
	if object, ok := existing.(map[string]any); ok {
		return object
	}
	return map[string]any(nil)
}

func arrayIndex(segment string) (int, bool) {
	if segment == "" {
		return 0, false
	}
	for _, r := range segment {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	index, err := strconv.Atoi(segment)
	if err != nil {
		return 0, false
	}
	return index, true
}

func joinPath(parent, segment string) string {
	if parent == "" {
		return segment
	}
	return parent + "." + segment
}
