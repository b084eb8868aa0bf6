package qs

import (
	"net/url"
	"strings"
)

// Values is an ordered list of query parameters. Unlike url.Values it keeps
// insertion order, so encoded keys follow struct field declaration order.
type Values struct {
	pairs []pair
}

type pair struct {
	path  []string
	value string
}

// key renders a path with bracket notation: filter[tags][0].
func (p pair) key() string {
	return joinPath(p.path)
}

// Add appends a parameter. Nested keys are written as separate path segments.
func (v *Values) Add(value string, path ...string) {
	if len(path) == 0 {
		return
	}
	v.pairs = append(v.pairs, pair{path: path, value: value})
}

// Get returns the first value stored under key (in bracket notation),
// or an empty string.
func (v *Values) Get(key string) string {
	for _, p := range v.pairs {
		if p.key() == key {
			return p.value
		}
	}
	return ""
}

// Len returns the number of parameters.
func (v *Values) Len() int {
	return len(v.pairs)
}

// Keys returns parameter keys in order, repeated keys included.
func (v *Values) Keys() []string {
	keys := make([]string, 0, len(v.pairs))
	for _, p := range v.pairs {
		keys = append(keys, p.key())
	}
	return keys
}

// URLValues converts to url.Values. Ordering is lost.
func (v *Values) URLValues() url.Values {
	out := make(url.Values, len(v.pairs))
	for _, p := range v.pairs {
		out.Add(p.key(), p.value)
	}
	return out
}

// Encode renders "key=value" pairs joined by "&" in insertion order.
// Key segments and values are escaped with url.QueryEscape; the brackets
// between nested segments are written literally.
func (v *Values) Encode() string {
	if v == nil || len(v.pairs) == 0 {
		return ""
	}

	var b strings.Builder
	for i, p := range v.pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		for j, seg := range p.path {
			if j == 0 {
				b.WriteString(url.QueryEscape(seg))
				continue
			}
			b.WriteByte('[')
			b.WriteString(url.QueryEscape(seg))
			b.WriteByte(']')
		}
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.value))
	}
	return b.String()
}

func joinPath(path []string) string {
	if len(path) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(path[0])
	for _, seg := range path[1:] {
		b.WriteByte('[')
		b.WriteString(seg)
		b.WriteByte(']')
	}
	return b.String()
}

func childPath(path []string, seg string) []string {
	out := make([]string, len(path)+1)
	copy(out, path)
	out[len(path)] = seg
	return out
}
