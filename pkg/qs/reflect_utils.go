package qs

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

var (
	textMarshalerType   = reflect.TypeFor[encoding.TextMarshaler]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
)

// fieldTag is the parsed form of `query:"name,omitempty"`.
type fieldTag struct {
	name      string
	omitEmpty bool
	skip      bool
}

// parseFieldTag parses the struct field tag. An empty name means the
// naming policy decides the key.
func parseFieldTag(field reflect.StructField, tagName string) fieldTag {
	tag, ok := field.Tag.Lookup(tagName)
	if !ok || tag == "" {
		return fieldTag{}
	}
	if tag == "-" {
		return fieldTag{skip: true}
	}

	parts := strings.Split(tag, ",")
	ft := fieldTag{name: parts[0]}
	for _, opt := range parts[1:] {
		if strings.TrimSpace(opt) == "omitempty" {
			ft.omitEmpty = true
		}
	}
	return ft
}

// keyName resolves the query key of a struct field.
func keyName(field reflect.StructField, tag fieldTag, naming Naming) string {
	if tag.name != "" {
		return tag.name
	}
	return naming.Apply(field.Name)
}

// isFlattened reports whether an embedded field's exported fields are promoted
// into the parent's key space.
func isFlattened(field reflect.StructField, tag fieldTag) bool {
	if !field.Anonymous || tag.name != "" {
		return false
	}
	t := field.Type
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Kind() == reflect.Struct && !implementsText(t)
}

func implementsText(t reflect.Type) bool {
	return t.Implements(textMarshalerType) || reflect.PointerTo(t).Implements(textMarshalerType)
}

// textMarshaler returns v as a TextMarshaler, copying it behind a pointer
// when only the pointer type implements the interface.
func textMarshaler(v reflect.Value) (encoding.TextMarshaler, bool) {
	if !v.IsValid() || !v.CanInterface() {
		return nil, false
	}
	if tm, ok := v.Interface().(encoding.TextMarshaler); ok {
		return tm, true
	}
	if v.Kind() != reflect.Pointer && reflect.PointerTo(v.Type()).Implements(textMarshalerType) {
		p := reflect.New(v.Type())
		p.Elem().Set(v)
		return p.Interface().(encoding.TextMarshaler), true
	}
	return nil, false
}

// formatScalar renders a non-container value. ok is false for kinds that
// are not scalars (structs, maps, slices) so callers can recurse.
func formatScalar(v reflect.Value) (s string, ok bool, err error) {
	if tm, isText := textMarshaler(v); isText {
		b, err := tm.MarshalText()
		if err != nil {
			return "", true, fmt.Errorf("%w: %w", ErrMarshalText, err)
		}
		return string(b), true, nil
	}

	switch v.Kind() {
	case reflect.String:
		return v.String(), true, nil
	case reflect.Bool:
		return strconv.FormatBool(v.Bool()), true, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10), true, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(v.Uint(), 10), true, nil
	case reflect.Float32:
		return strconv.FormatFloat(v.Float(), 'f', -1, 32), true, nil
	case reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64), true, nil
	case reflect.Slice:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return string(v.Bytes()), true, nil
		}
	case reflect.Complex64, reflect.Complex128, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return "", true, fmt.Errorf("%w: %s", ErrUnsupportedType, v.Type())
	}
	return "", false, nil
}

// setFieldValue sets the field value from string values.
func setFieldValue(field reflect.Value, fieldType reflect.Type, values []string) error {
	// Handle pointer types
	if fieldType.Kind() == reflect.Pointer {
		if field.IsNil() {
			field.Set(reflect.New(fieldType.Elem()))
		}
		return setFieldValue(field.Elem(), fieldType.Elem(), values)
	}

	if len(values) == 0 {
		return nil
	}
	value := values[0]

	if field.CanAddr() && reflect.PointerTo(fieldType).Implements(textUnmarshalerType) {
		tu := field.Addr().Interface().(encoding.TextUnmarshaler)
		if err := tu.UnmarshalText([]byte(value)); err != nil {
			return fmt.Errorf("invalid %s value %q: %v", fieldType, value, err)
		}
		return nil
	}

	switch fieldType.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, fieldType.Bits())
		if err != nil {
			return fmt.Errorf("invalid int value %q", value)
		}
		field.SetInt(n)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(value, 10, fieldType.Bits())
		if err != nil {
			return fmt.Errorf("invalid uint value %q", value)
		}
		field.SetUint(n)

	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(value, fieldType.Bits())
		if err != nil {
			return fmt.Errorf("invalid float value %q", value)
		}
		field.SetFloat(n)

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			// Be lenient with boolean values
			switch strings.ToLower(value) {
			case "on", "yes":
				b = true
			case "off", "no", "":
				b = false
			default:
				return fmt.Errorf("invalid bool value %q", value)
			}
		}
		field.SetBool(b)

	case reflect.Slice:
		if fieldType.Elem().Kind() == reflect.Uint8 {
			field.SetBytes([]byte(value))
			return nil
		}
		return fmt.Errorf("unsupported type %s", fieldType)

	default:
		return fmt.Errorf("unsupported type %s", fieldType.Kind())
	}

	return nil
}

// setSliceValue sets slice field values from string values.
func setSliceValue(field reflect.Value, fieldType reflect.Type, values []string, splitComma bool) error {
	elemType := fieldType.Elem()

	var allValues []string
	for _, v := range values {
		if splitComma && strings.Contains(v, ",") {
			allValues = append(allValues, strings.Split(v, ",")...)
		} else {
			allValues = append(allValues, v)
		}
	}

	slice := reflect.MakeSlice(fieldType, len(allValues), len(allValues))

	for i, value := range allValues {
		elem := slice.Index(i)
		if err := setFieldValue(elem, elemType, []string{strings.TrimSpace(value)}); err != nil {
			return err
		}
	}

	field.Set(slice)
	return nil
}
