package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
)

// MarshalDocument renders doc as indented JSON. encoding/json rejects
// non-finite floats, so when the first pass fails the tree is rewritten
// with "NaN", "+Inf" and "-Inf" placeholder strings and encoded again.
// The second return value reports whether that rewrite happened.
func MarshalDocument(doc Document) ([]byte, bool, error) {
	data, err := json.MarshalIndent(doc, "", "    ")
	if err == nil {
		return append(data, '\n'), false, nil
	}

	sanitized, serr := json.MarshalIndent(sanitizeValue(doc), "", "    ")
	if serr != nil {
		return nil, false, fmt.Errorf("encoding metrics document: %w", errors.Join(err, serr))
	}
	return append(sanitized, '\n'), true, nil
}

// sanitizeValue converts v into a JSON-encodable tree of maps, slices and
// scalars, replacing non-finite floats with placeholder strings. Struct
// fields are keyed by their json tags and anonymous embeds are flattened,
// matching how encoding/json would lay them out.
func sanitizeValue(v any) any {
	return sanitizeReflect(reflect.ValueOf(v))
}

func sanitizeReflect(v reflect.Value) any {
	if !v.IsValid() {
		return nil
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return nil
		}
		return sanitizeReflect(v.Elem())
	case reflect.Float32, reflect.Float64:
		return sanitizeFloat(v.Float())
	case reflect.Slice:
		if v.IsNil() {
			return nil
		}
		return sanitizeSeq(v)
	case reflect.Array:
		return sanitizeSeq(v)
	case reflect.Map:
		if v.IsNil() {
			return nil
		}
		out := make(map[string]any, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			out[fmt.Sprint(iter.Key().Interface())] = sanitizeReflect(iter.Value())
		}
		return out
	case reflect.Struct:
		return sanitizeStruct(v)
	default:
		return v.Interface()
	}
}

func sanitizeFloat(f float64) any {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "+Inf"
	case math.IsInf(f, -1):
		return "-Inf"
	}
	return f
}

func sanitizeSeq(v reflect.Value) []any {
	out := make([]any, v.Len())
	for i := range v.Len() {
		out[i] = sanitizeReflect(v.Index(i))
	}
	return out
}

func sanitizeStruct(v reflect.Value) map[string]any {
	t := v.Type()
	out := make(map[string]any, t.NumField())
	for i := range t.NumField() {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		tag := field.Tag.Get("json")
		name, _, _ := strings.Cut(tag, ",")
		if name == "-" {
			continue
		}
		if field.Anonymous && name == "" {
			if inner, ok := sanitizeReflect(v.Field(i)).(map[string]any); ok {
				for k, val := range inner {
					out[k] = val
				}
				continue
			}
		}
		if name == "" {
			name = field.Name
		}
		out[name] = sanitizeReflect(v.Field(i))
	}
	return out
}
