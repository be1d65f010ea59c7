package collection

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"time"
)

// ErrInvalidPatch is returned when an update patch is not a JSON object
var ErrInvalidPatch = errors.New("collection: patch must encode to a JSON object")

type fields map[string]json.RawMessage

func toFields(v any) (fields, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var f fields
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, err
	}
	if f == nil {
		f = fields{}
	}
	return f, nil
}

func (f fields) set(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	f[key] = raw
	return nil
}

func (f fields) time(key string) time.Time {
	var t time.Time
	if raw, ok := f[key]; ok {
		_ = json.Unmarshal(raw, &t)
	}
	return t
}

func fromFields[T any](f fields) (T, error) {
	var out T
	raw, err := json.Marshal(f)
	if err != nil {
		return out, err
	}
	err = json.Unmarshal(raw, &out)
	return out, err
}

// checkPatch accepts maps keyed by string and raw JSON. A struct would
// encode its zero fields and overwrite stored values, so typed callers
// go through UpdateFunc instead.
func checkPatch(patch any) error {
	switch patch.(type) {
	case nil, json.RawMessage:
		return nil
	}
	if t := reflect.TypeOf(patch); t.Kind() == reflect.Map && t.Key().Kind() == reflect.String {
		return nil
	}
	return fmt.Errorf("%w: got %T, use a map or UpdateFunc", ErrInvalidPatch, patch)
}

// overlay copies every top-level key of patch over base, like an object spread
func overlay(base fields, patch any) (fields, error) {
	if patch == nil {
		return base, nil
	}
	p, err := toFields(patch)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPatch, err)
	}
	out := make(fields, len(base)+len(p))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range p {
		out[k] = v
	}
	return out, nil
}
