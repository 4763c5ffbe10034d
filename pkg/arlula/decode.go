package arlula

import (
	"fmt"
	"math"
	"time"

	"github.com/goccy/go-json"
)

// DecodeJSON parses a response body into the untyped value consumed by the
// entity decoders.
func DecodeJSON(data []byte) (any, error) {
	var raw any

	err := json.Unmarshal(data, &raw)
	if err != nil {
		return nil, &DecodeError{Entity: "response", Reason: "invalid JSON: " + err.Error()}
	}

	return raw, nil
}

// object is a JSON object being decoded into the named entity.
type object struct {
	entity string
	fields map[string]any
}

func asObject(entity string, raw any) (object, error) {
	fields, ok := raw.(map[string]any)
	if !ok {
		return object{}, &DecodeError{Entity: entity, Reason: "expected an object, got " + typeName(raw)}
	}

	return object{entity: entity, fields: fields}, nil
}

func (o object) has(key string) bool {
	v, ok := o.fields[key]

	return ok && v != nil
}

func (o object) missing(key string) *DecodeError {
	return &DecodeError{Entity: o.entity, Field: key, Reason: "is missing"}
}

func (o object) wrongType(key, want string) *DecodeError {
	return &DecodeError{Entity: o.entity, Field: key, Reason: fmt.Sprintf("must be %s, got %s", want, typeName(o.fields[key]))}
}

func (o object) invalid(key, reason string) *DecodeError {
	return &DecodeError{Entity: o.entity, Field: key, Reason: reason}
}

// str returns a required string field; empty strings are accepted.
func (o object) str(key string) (string, error) {
	if !o.has(key) {
		return "", o.missing(key)
	}

	s, ok := o.fields[key].(string)
	if !ok {
		return "", o.wrongType(key, "a string")
	}

	return s, nil
}

// id returns a required, non-empty string field.
func (o object) id(key string) (string, error) {
	s, err := o.str(key)
	if err != nil {
		return "", err
	}

	if s == "" {
		return "", o.invalid(key, "must not be empty")
	}

	return s, nil
}

func (o object) optStr(key string) (string, error) {
	if !o.has(key) {
		return "", nil
	}

	return o.str(key)
}

func (o object) num(key string) (float64, error) {
	if !o.has(key) {
		return 0, o.missing(key)
	}

	n, ok := o.fields[key].(float64)
	if !ok {
		return 0, o.wrongType(key, "a number")
	}

	return n, nil
}

func (o object) optNum(key string) (float64, bool, error) {
	if !o.has(key) {
		return 0, false, nil
	}

	n, err := o.num(key)

	return n, err == nil, err
}

// integer returns a required number that carries no fractional part.
func (o object) integer(key string) (int64, error) {
	n, err := o.num(key)
	if err != nil {
		return 0, err
	}

	if n != math.Trunc(n) {
		return 0, o.invalid(key, "must be an integer")
	}

	return int64(n), nil
}

func (o object) optInteger(key string) (int64, error) {
	if !o.has(key) {
		return 0, nil
	}

	return o.integer(key)
}

func (o object) boolean(key string) (bool, error) {
	if !o.has(key) {
		return false, o.missing(key)
	}

	b, ok := o.fields[key].(bool)
	if !ok {
		return false, o.wrongType(key, "a boolean")
	}

	return b, nil
}

func (o object) time(key string) (time.Time, error) {
	s, err := o.str(key)
	if err != nil {
		return time.Time{}, err
	}

	t, err := parseTime(s)
	if err != nil {
		return time.Time{}, o.invalid(key, "is not an RFC 3339 timestamp: "+s)
	}

	return t, nil
}

func (o object) optTime(key string) (*time.Time, error) {
	if !o.has(key) {
		return nil, nil //nolint:nilnil // absent optional timestamp
	}

	t, err := o.time(key)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

func (o object) array(key string) ([]any, error) {
	if !o.has(key) {
		return nil, o.missing(key)
	}

	a, ok := o.fields[key].([]any)
	if !ok {
		return nil, o.wrongType(key, "an array")
	}

	return a, nil
}

func (o object) optArray(key string) ([]any, error) {
	if !o.has(key) {
		return nil, nil
	}

	return o.array(key)
}

func (o object) obj(key string) (map[string]any, error) {
	if !o.has(key) {
		return nil, o.missing(key)
	}

	m, ok := o.fields[key].(map[string]any)
	if !ok {
		return nil, o.wrongType(key, "an object")
	}

	return m, nil
}

func (o object) optObj(key string) (map[string]any, error) {
	if !o.has(key) {
		return nil, nil
	}

	return o.obj(key)
}

func (o object) strings(key string) ([]string, error) {
	items, err := o.array(key)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(items))

	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, o.invalid(fmt.Sprintf("%s[%d]", key, i), "must be a string, got "+typeName(item))
		}

		out = append(out, s)
	}

	return out, nil
}

func (o object) optStrings(key string) ([]string, error) {
	if !o.has(key) {
		return nil, nil
	}

	return o.strings(key)
}

// decodeEach decodes every element of the array at key. The first failing
// element fails the whole array.
func decodeEach[T any](o object, key string, items []any, decode func(any) (T, error)) ([]T, error) {
	out := make([]T, 0, len(items))

	for i, item := range items {
		v, err := decode(item)
		if err != nil {
			return nil, o.invalid(fmt.Sprintf("%s[%d]", key, i), err.Error())
		}

		out = append(out, v)
	}

	return out, nil
}

// list decodes a required array of sub-entities.
func list[T any](o object, key string, decode func(any) (T, error)) ([]T, error) {
	items, err := o.array(key)
	if err != nil {
		return nil, err
	}

	return decodeEach(o, key, items, decode)
}

// optList decodes an optional array of sub-entities.
func optList[T any](o object, key string, decode func(any) (T, error)) ([]T, error) {
	if !o.has(key) {
		return nil, nil
	}

	return list(o, key, decode)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err == nil {
		return t, nil
	}

	// Dates without a time component appear on older search payloads.
	t, dateErr := time.Parse(time.DateOnly, s)
	if dateErr == nil {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("parsing time %q: %w", s, err)
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
