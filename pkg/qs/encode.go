package qs

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Encode serializes a struct (or a map with scalar keys) into a URL query
// string. Keys follow field declaration order; nil pointers, interfaces,
// slices and maps are omitted.
//
// Example:
//
//	type SearchParams struct {
//		Page     *int    `query:"page"`
//		PageSize *int    `query:"pageSize"`
//		Query    string  `query:"q,omitempty"`
//		Tags     []string
//	}
//
//	s, err := qs.Encode(SearchParams{Page: &page, Tags: []string{"go"}})
//	// s == "page=1&Tags[0]=go"
func Encode(v any, opts ...Option) (string, error) {
	values, err := Marshal(v, opts...)
	if err != nil {
		return "", err
	}
	return values.Encode(), nil
}

// Marshal serializes v into ordered Values without rendering them.
func Marshal(v any, opts ...Option) (*Values, error) {
	rv := reflect.ValueOf(v)
	cfg := newConfig(rv, opts)

	for rv.IsValid() && (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) {
		if rv.IsNil() {
			return nil, fmt.Errorf("%w: top-level value is nil", ErrUnsupportedType)
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return nil, fmt.Errorf("%w: top-level value is nil", ErrUnsupportedType)
	}

	e := &encoder{cfg: cfg, out: &Values{}}
	switch {
	case rv.Kind() == reflect.Struct && !implementsText(rv.Type()):
		if err := e.encodeStruct(nil, rv); err != nil {
			return nil, err
		}
	case rv.Kind() == reflect.Map:
		if err := e.encodeMap(nil, rv); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: top-level value must be a struct or map, got %s", ErrUnsupportedType, rv.Type())
	}

	return e.out, nil
}

type encoder struct {
	cfg *config
	out *Values
}

func (e *encoder) encodeStruct(path []string, rv reflect.Value) error {
	rt := rv.Type()

	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		fv := rv.Field(i)

		// Skip unexported fields, embedded ones included
		if !field.IsExported() {
			continue
		}

		tag := parseFieldTag(field, e.cfg.tagName)
		if tag.skip {
			continue
		}

		if isFlattened(field, tag) {
			if fv.Kind() == reflect.Pointer {
				if fv.IsNil() {
					continue
				}
				fv = fv.Elem()
			}
			if err := e.encodeStruct(path, fv); err != nil {
				return err
			}
			continue
		}

		if tag.omitEmpty && fv.IsZero() {
			continue
		}

		name := keyName(field, tag, e.cfg.naming)
		if err := e.encodeValue(childPath(path, name), fv); err != nil {
			return err
		}
	}

	return nil
}

func (e *encoder) encodeValue(path []string, v reflect.Value) error {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	// Nil slices are absent, []byte included
	if v.Kind() == reflect.Slice && v.IsNil() {
		return nil
	}

	s, ok, err := formatScalar(v)
	if err != nil {
		return &FieldError{Field: joinPath(path), Err: err}
	}
	if ok {
		e.out.Add(s, path...)
		return nil
	}

	switch v.Kind() {
	case reflect.Struct:
		return e.encodeStruct(path, v)
	case reflect.Map:
		if v.IsNil() {
			return nil
		}
		return e.encodeMap(path, v)
	case reflect.Slice:
		if v.IsNil() {
			return nil
		}
		return e.encodeList(path, v)
	case reflect.Array:
		return e.encodeList(path, v)
	}

	return &FieldError{Field: joinPath(path), Err: fmt.Errorf("%w: %s", ErrUnsupportedType, v.Type())}
}

func (e *encoder) encodeList(path []string, v reflect.Value) error {
	switch e.cfg.arrayFormat {
	case ArrayRepeat:
		for i := 0; i < v.Len(); i++ {
			if err := e.encodeValue(path, v.Index(i)); err != nil {
				return err
			}
		}
		return nil

	case ArrayComma:
		parts := make([]string, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			elem := v.Index(i)
			for elem.Kind() == reflect.Pointer || elem.Kind() == reflect.Interface {
				if elem.IsNil() {
					break
				}
				elem = elem.Elem()
			}
			if (elem.Kind() == reflect.Pointer || elem.Kind() == reflect.Interface) && elem.IsNil() {
				continue
			}
			s, ok, err := formatScalar(elem)
			if err != nil {
				return &FieldError{Field: joinPath(path), Err: err}
			}
			if !ok {
				return &FieldError{
					Field: joinPath(path),
					Err:   fmt.Errorf("%w: comma format requires scalar elements, got %s", ErrUnsupportedType, elem.Type()),
				}
			}
			parts = append(parts, s)
		}
		if len(parts) > 0 {
			e.out.Add(strings.Join(parts, ","), path...)
		}
		return nil

	default:
		for i := 0; i < v.Len(); i++ {
			if err := e.encodeValue(childPath(path, strconv.Itoa(i)), v.Index(i)); err != nil {
				return err
			}
		}
		return nil
	}
}

func (e *encoder) encodeMap(path []string, v reflect.Value) error {
	type entry struct {
		key   string
		value reflect.Value
	}

	entries := make([]entry, 0, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		k, err := mapKey(iter.Key())
		if err != nil {
			if len(path) == 0 {
				return err
			}
			return &FieldError{Field: joinPath(path), Err: err}
		}
		entries = append(entries, entry{key: k, value: iter.Value()})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].key < entries[j].key })

	for _, en := range entries {
		if err := e.encodeValue(childPath(path, en.key), en.value); err != nil {
			return err
		}
	}
	return nil
}

func mapKey(k reflect.Value) (string, error) {
	if k.Kind() == reflect.Interface && !k.IsNil() {
		k = k.Elem()
	}
	switch k.Kind() {
	case reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Bool:
		s, _, err := formatScalar(k)
		return s, err
	}
	if tm, ok := textMarshaler(k); ok {
		b, err := tm.MarshalText()
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrMarshalText, err)
		}
		return string(b), nil
	}
	return "", fmt.Errorf("%w: map key of type %s", ErrUnsupportedType, k.Type())
}
