package logex

import (
	"fmt"
	"reflect"
	"strings"
)

// Maximum recursion depth to prevent stack overflow
const maxDumpDepth = 10

// maxDumpElements bounds how many slice or array elements are rendered.
const maxDumpElements = 10

// Dump renders the contents of v as a single DEBUG record under the given
// label. Structs list their exported fields, maps and slices their
// elements, basic types their values. Cycles render as circular references
// instead of recursing.
func (s *Service) Dump(label string, v any) {
	if s == nil {
		return
	}
	if label == emptyString {
		label = "Dump"
	}

	lines := make([]string, 0, 16)
	if v == nil {
		lines = append(lines, label+": <nil>")
	} else {
		visited := make(map[uintptr]bool)
		dumpValue(&lines, v, label, visited, 0)
	}
	s.dispatch(SeverityDebug, strings.Join(lines, "\n"))
}

// Dump renders v at DEBUG level on the default Service.
func Dump(label string, v any) { Default().Dump(label, v) }

// dumpValue is the recursive renderer behind Dump.
func dumpValue(lines *[]string, v any, prefix string, visited map[uintptr]bool, depth int) {
	if depth > maxDumpDepth {
		*lines = append(*lines, prefix+": <max depth reached>")
		return
	}
	if v == nil {
		*lines = append(*lines, prefix+": <nil>")
		return
	}

	val := reflect.ValueOf(v)

	// Unwrap interface and pointer chains. A pointer whose target is
	// already being rendered marks a cycle.
	for val.Kind() == reflect.Interface || val.Kind() == reflect.Ptr {
		if val.IsNil() {
			*lines = append(*lines, prefix+": <nil>")
			return
		}
		if val.Kind() == reflect.Ptr && visited[val.Pointer()] {
			*lines = append(*lines, prefix+": <circular reference>")
			return
		}
		val = val.Elem()
	}

	typ := val.Type()

	// Record the unwrapped address once, so pointers back into the
	// structure register above while plain pointers dereference.
	if val.CanAddr() {
		visited[val.Addr().Pointer()] = true
	}

	switch val.Kind() {
	case reflect.Struct:
		*lines = append(*lines, fmt.Sprintf("%s: %s {", prefix, typ.Name()))
		for i := 0; i < val.NumField(); i++ {
			field := typ.Field(i)
			fieldVal := val.Field(i)
			if !fieldVal.CanInterface() {
				continue
			}
			dumpValue(lines, fieldVal.Interface(), prefix+"."+field.Name, visited, depth+1)
		}
		*lines = append(*lines, prefix+": }")

	case reflect.Map:
		*lines = append(*lines, fmt.Sprintf("%s: map[%s]%s (len: %d) {",
			prefix, typ.Key().String(), typ.Elem().String(), val.Len()))
		iter := val.MapRange()
		for iter.Next() {
			keyStr := fmt.Sprintf("%v", iter.Key().Interface())
			dumpValue(lines, iter.Value().Interface(), prefix+"["+keyStr+"]", visited, depth+1)
		}
		*lines = append(*lines, prefix+": }")

	case reflect.Slice, reflect.Array:
		*lines = append(*lines, fmt.Sprintf("%s: %s (len: %d) {", prefix, typ.String(), val.Len()))
		for i := 0; i < val.Len() && i < maxDumpElements; i++ {
			elemPrefix := fmt.Sprintf("%s[%d]", prefix, i)
			elem := val.Index(i)
			if elem.CanInterface() {
				dumpValue(lines, elem.Interface(), elemPrefix, visited, depth+1)
			}
		}
		if val.Len() > maxDumpElements {
			*lines = append(*lines, fmt.Sprintf("%s: ... (%d more elements)", prefix, val.Len()-maxDumpElements))
		}
		*lines = append(*lines, prefix+": }")

	default:
		if val.IsValid() && val.CanInterface() {
			*lines = append(*lines, fmt.Sprintf("%s: %v", prefix, val.Interface()))
		} else {
			*lines = append(*lines, fmt.Sprintf("%s: %v", prefix, v))
		}
	}
}
