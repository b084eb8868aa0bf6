package qs

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
)

// Decode parses a query string and binds it into v, which must be a non-nil
// pointer to a struct. Keys are resolved with the same tags and naming policy
// as Encode, so Decode(Encode(x)) restores the encodable fields of x.
//
// Slices accept repeated keys (tags=a&tags=b) and indexed keys
// (tags[0]=a&tags[1]=b); with ArrayComma they also split on commas.
// Missing keys leave fields untouched.
func Decode(query string, v any, opts ...Option) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("%w: target must be a non-nil pointer", ErrInvalidTarget)
	}
	if rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: target must be a pointer to struct", ErrInvalidTarget)
	}

	values, err := url.ParseQuery(query)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToParseQuery, err)
	}

	d := &decoder{cfg: newConfig(rv, opts), values: values}
	return d.bindStruct(nil, rv.Elem())
}

type decoder struct {
	cfg    *config
	values url.Values
}

func (d *decoder) bindStruct(path []string, rv reflect.Value) error {
	rt := rv.Type()

	for i := 0; i < rv.NumField(); i++ {
		field := rv.Field(i)
		fieldType := rt.Field(i)

		// Skip unexported fields
		if !field.CanSet() {
			continue
		}

		tag := parseFieldTag(fieldType, d.cfg.tagName)
		if tag.skip {
			continue
		}

		if isFlattened(fieldType, tag) {
			if err := d.bindNested(path, field); err != nil {
				return err
			}
			continue
		}

		key := childPath(path, keyName(fieldType, tag, d.cfg.naming))
		if err := d.bindField(key, field, fieldType.Name); err != nil {
			return err
		}
	}

	return nil
}

// bindNested binds an embedded struct, allocating embedded pointers only
// when one of their keys is present.
func (d *decoder) bindNested(path []string, field reflect.Value) error {
	if field.Kind() != reflect.Pointer {
		return d.bindStruct(path, field)
	}
	if !field.IsNil() {
		return d.bindStruct(path, field.Elem())
	}
	target := reflect.New(field.Type().Elem())
	if err := d.bindStruct(path, target.Elem()); err != nil {
		return err
	}
	if !target.Elem().IsZero() {
		field.Set(target)
	}
	return nil
}

func (d *decoder) bindField(path []string, field reflect.Value, fieldName string) error {
	key := joinPath(path)
	ft := field.Type()
	base := ft
	if base.Kind() == reflect.Pointer {
		base = base.Elem()
	}

	switch {
	case base.Kind() == reflect.Struct && !reflect.PointerTo(base).Implements(textUnmarshalerType):
		if !d.hasPrefix(key + "[") {
			return nil
		}
		target := field
		if ft.Kind() == reflect.Pointer {
			if field.IsNil() {
				field.Set(reflect.New(base))
			}
			target = field.Elem()
		}
		return d.bindStruct(path, target)

	case ft.Kind() == reflect.Slice && ft.Elem().Kind() != reflect.Uint8:
		vals := d.listValues(key)
		if len(vals) == 0 {
			return nil
		}
		if err := setSliceValue(field, ft, vals, d.cfg.arrayFormat == ArrayComma); err != nil {
			return fmt.Errorf("%w: field %s: %v", ErrFailedToParseQuery, fieldName, err)
		}
		return nil

	case ft.Kind() == reflect.Map:
		return d.bindMap(key, field, fieldName)
	}

	vals, ok := d.values[key]
	if !ok || len(vals) == 0 {
		// No value provided, leave as zero value
		return nil
	}
	if err := setFieldValue(field, ft, vals); err != nil {
		return fmt.Errorf("%w: field %s: %v", ErrFailedToParseQuery, fieldName, err)
	}
	return nil
}

// listValues collects repeated values first, then indexed ones.
func (d *decoder) listValues(key string) []string {
	if vals, ok := d.values[key]; ok {
		return vals
	}
	var out []string
	for i := 0; ; i++ {
		vals, ok := d.values[key+"["+strconv.Itoa(i)+"]"]
		if !ok {
			break
		}
		out = append(out, vals...)
	}
	return out
}

func (d *decoder) bindMap(key string, field reflect.Value, fieldName string) error {
	ft := field.Type()
	if ft.Key().Kind() != reflect.String {
		return fmt.Errorf("%w: field %s: unsupported map key %s", ErrFailedToParseQuery, fieldName, ft.Key())
	}

	prefix := key + "["
	for k, vals := range d.values {
		if !strings.HasPrefix(k, prefix) || !strings.HasSuffix(k, "]") {
			continue
		}
		name := k[len(prefix) : len(k)-1]
		if strings.ContainsAny(name, "[]") {
			continue
		}
		if field.IsNil() {
			field.Set(reflect.MakeMap(ft))
		}
		elem := reflect.New(ft.Elem()).Elem()
		if err := setFieldValue(elem, ft.Elem(), vals); err != nil {
			return fmt.Errorf("%w: field %s: %v", ErrFailedToParseQuery, fieldName, err)
		}
		field.SetMapIndex(reflect.ValueOf(name).Convert(ft.Key()), elem)
	}
	return nil
}

func (d *decoder) hasPrefix(prefix string) bool {
	for k := range d.values {
		if strings.HasPrefix(k, prefix) {
			return true
		}
	}
	return false
}
