package qs

import (
	"fmt"
	"reflect"
)

// DefaultTagName is the struct tag consulted for key names and options.
const DefaultTagName = "query"

// ArrayFormat controls how slices and arrays are flattened into keys.
type ArrayFormat string

const (
	// ArrayIndexed writes tags[0]=a&tags[1]=b.
	ArrayIndexed ArrayFormat = "indexed"
	// ArrayRepeat writes tags=a&tags=b.
	ArrayRepeat ArrayFormat = "repeat"
	// ArrayComma writes tags=a,b. Elements must be scalars.
	ArrayComma ArrayFormat = "comma"
)

// ParseArrayFormat converts a textual array format into an ArrayFormat.
// An empty string selects ArrayIndexed.
func ParseArrayFormat(s string) (ArrayFormat, error) {
	switch ArrayFormat(s) {
	case "", ArrayIndexed:
		return ArrayIndexed, nil
	case ArrayRepeat, ArrayComma:
		return ArrayFormat(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownArrayFormat, s)
}

// Option configures encoding and binding.
type Option func(*config)

// WithNaming sets the policy applied to Go field names without an explicit tag name.
func WithNaming(n Naming) Option {
	return func(c *config) {
		c.naming = n
	}
}

// WithArrayFormat sets the slice flattening format.
// Unknown formats are ignored.
func WithArrayFormat(f ArrayFormat) Option {
	return func(c *config) {
		if _, err := ParseArrayFormat(string(f)); err == nil && f != "" {
			c.arrayFormat = f
		}
	}
}

// WithTagName overrides the struct tag used for key names. Empty names are ignored.
func WithTagName(name string) Option {
	return func(c *config) {
		if name != "" {
			c.tagName = name
		}
	}
}

// Configurer is implemented by record types that carry their own encoding
// options, for example a type-wide naming policy:
//
//	func (SearchParams) QueryOptions() []qs.Option {
//		return []qs.Option{qs.WithNaming(qs.CamelCase)}
//	}
//
// Options passed explicitly to Encode or Decode are applied after these.
type Configurer interface {
	QueryOptions() []Option
}

var configurerType = reflect.TypeFor[Configurer]()

type config struct {
	naming      Naming
	arrayFormat ArrayFormat
	tagName     string
}

func defaultConfig() *config {
	return &config{
		naming:      Identity,
		arrayFormat: ArrayIndexed,
		tagName:     DefaultTagName,
	}
}

// newConfig applies the type-level options of rv (if any) and then opts.
func newConfig(rv reflect.Value, opts []Option) *config {
	cfg := defaultConfig()
	if c, ok := configurerOf(rv); ok {
		for _, opt := range c.QueryOptions() {
			if opt != nil {
				opt(cfg)
			}
		}
	}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	return cfg
}

func configurerOf(rv reflect.Value) (Configurer, bool) {
	if !rv.IsValid() || !rv.CanInterface() {
		return nil, false
	}
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil, false
	}
	if c, ok := rv.Interface().(Configurer); ok {
		return c, true
	}
	if rv.Kind() != reflect.Pointer && reflect.PointerTo(rv.Type()).Implements(configurerType) {
		p := reflect.New(rv.Type())
		p.Elem().Set(rv)
		return p.Interface().(Configurer), true
	}
	return nil, false
}
