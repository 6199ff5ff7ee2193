// util/json.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
)

///////////////////////////////////////////////////////////////////////////
// JSON

func UnmarshalJSON[T any](r io.Reader, out *T) error {
	// We need the contents as an array of bytes so that we can issue
	// reasonable errors.
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return UnmarshalJSONBytes(b, out)
}

// UnmarshalJSONBytes unmarshals the bytes into the given type, turning
// byte offsets in decoding errors into line and character positions.
func UnmarshalJSONBytes[T any](b []byte, out *T) error {
	err := json.Unmarshal(b, out)
	if err == nil {
		return nil
	}

	position := func(offset int64) (line, char int) {
		line, char = 1, 1
		for _, c := range b[:min(int(offset), len(b))] {
			if c == '\n' {
				line, char = line+1, 1
			} else {
				char++
			}
		}
		return
	}

	var serr *json.SyntaxError
	var terr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &serr):
		line, char := position(serr.Offset)
		return fmt.Errorf("Error at line %d, character %d: %w", line, char, serr)
	case errors.As(err, &terr):
		line, char := position(terr.Offset)
		return fmt.Errorf("Error at line %d, character %d: %s value for %s.%s invalid for type %s",
			line, char, terr.Value, terr.Struct, terr.Field, terr.Type.String())
	default:
		return err
	}
}

///////////////////////////////////////////////////////////////////////////

// CheckJSON checks whether the provided JSON is syntactically valid and
// then typechecks it with respect to the provided type T, reporting
// mismatched value kinds and object keys that T doesn't have.
func CheckJSON[T any](contents []byte, e *ErrorLogger) {
	defer e.CheckDepth(e.CurrentDepth())

	var items any
	if err := UnmarshalJSONBytes(contents, &items); err != nil {
		e.Error(err)
		return
	}

	var t T
	fields := make(map[reflect.Type]map[string]reflect.Type)
	typeCheckJSON(items, reflect.TypeOf(t), fields, e)
}

// JSONChecker is implemented by types with custom JSON unmarshalers so that
// they can say whether raw unmarshaled JSON is compatible with them.
type JSONChecker interface {
	CheckJSON(json any) bool
}

var jsonCheckerType = reflect.TypeOf((*JSONChecker)(nil)).Elem()

func typeCheckJSON(v any, ty reflect.Type, fields map[reflect.Type]map[string]reflect.Type, e *ErrorLogger) {
	for ty.Kind() == reflect.Pointer {
		ty = ty.Elem()
	}

	if ty.Implements(jsonCheckerType) || reflect.PointerTo(ty).Implements(jsonCheckerType) {
		if !reflect.New(ty).Interface().(JSONChecker).CheckJSON(v) {
			e.ErrorString("unexpected data format provided for object: %s", reflect.TypeOf(v))
		}
		return
	}

	mismatch := func() {
		e.ErrorString("unexpected data format provided for object: %s", reflect.TypeOf(v))
	}

	switch ty.Kind() {
	case reflect.Array, reflect.Slice:
		array, ok := v.([]any)
		if !ok {
			mismatch()
			return
		}
		for _, item := range array {
			typeCheckJSON(item, ty.Elem(), fields, e)
		}

	case reflect.Map:
		m, ok := v.(map[string]any)
		if !ok {
			mismatch()
			return
		}
		for _, k := range SortedMapKeys(m) {
			e.Push(k)
			typeCheckJSON(m[k], ty.Elem(), fields, e)
			e.Pop()
		}

	case reflect.Struct:
		m, ok := v.(map[string]any)
		if !ok {
			mismatch()
			return
		}
		// Cache the JSON name -> field type mapping for each struct type
		// we see.
		types, ok := fields[ty]
		if !ok {
			types = make(map[string]reflect.Type)
			for _, field := range reflect.VisibleFields(ty) {
				if tag, ok := field.Tag.Lookup("json"); ok {
					name, _, _ := strings.Cut(tag, ",")
					types[name] = field.Type
				}
			}
			fields[ty] = types
		}
		for _, k := range SortedMapKeys(m) {
			if fty, ok := types[k]; ok {
				e.Push(k)
				typeCheckJSON(m[k], fty, fields, e)
				e.Pop()
			} else {
				e.ErrorString("The entry %q is not an expected JSON object. Is it misspelled?", k)
			}
		}

	case reflect.String:
		if _, ok := v.(string); !ok {
			mismatch()
		}

	case reflect.Bool:
		if _, ok := v.(bool); !ok {
			mismatch()
		}

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		if _, ok := v.(float64); !ok {
			mismatch()
		}
	}
}
