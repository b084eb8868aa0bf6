package qsgen

import (
	"fmt"
	"net/url"

	"github.com/dmitrymomot/qsgen/pkg/qs"
)

// Encoder is implemented by every type that carries generated query string
// methods.
type Encoder interface {
	// ToQueryString returns the encoded query, or "" if encoding fails.
	ToQueryString() string
	// TryToQueryString returns the encoded query or the encoding error.
	TryToQueryString() (string, error)
}

// TryToQueryString encodes v with qs.Encode. It is the generic equivalent of
// a generated TryToQueryString method.
func TryToQueryString[T any](v T, opts ...qs.Option) (string, error) {
	return qs.Encode(v, opts...)
}

// ToQueryString encodes v and returns "" on failure. It is the generic
// equivalent of a generated ToQueryString method.
func ToQueryString[T any](v T, opts ...qs.Option) string {
	s, err := TryToQueryString(v, opts...)
	if err != nil {
		return ""
	}
	return s
}

// AppendQuery replaces the query of rawURL with the encoded form of e.
// An empty encoding clears the query. Fragments are preserved.
func AppendQuery(rawURL string, e Encoder) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	query, err := e.TryToQueryString()
	if err != nil {
		return "", err
	}

	u.RawQuery = query
	u.ForceQuery = false
	return u.String(), nil
}
