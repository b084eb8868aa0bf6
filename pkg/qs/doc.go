// Package qs serializes Go structs into URL query strings and binds query
// strings back into structs.
//
// It is the serialization layer behind qsgen-generated ToQueryString and
// TryToQueryString methods, and it can be used directly as well.
//
// # Key Features
//
//   - Keys in struct field declaration order
//   - Per-field key names through the `query:"name"` struct tag
//   - Type-wide renaming policies: camelCase, PascalCase, snake_case,
//     SCREAMING_SNAKE_CASE, kebab-case and lowercase
//   - Optional fields: nil pointers, interfaces, slices and maps are omitted
//   - Nested structs and maps in bracket notation (filter[status]=open)
//   - Indexed, repeated or comma-separated slices
//   - encoding.TextMarshaler values (time.Time, uuid.UUID, ...)
//
// # Basic Usage
//
//	type ListUsersRequest struct {
//		Page     *int    `query:"page"`
//		PageSize *int    `query:"page_size"`
//		Search   string  `query:"q,omitempty"`
//		Internal string  `query:"-"`
//	}
//
//	s, err := qs.Encode(req)
//	// page=1&page_size=20
//
// # Renaming
//
// Fields without an explicit tag name are renamed by the active Naming policy.
// Identity (the default) keeps the Go field name. A policy can be passed per
// call with WithNaming, or declared once for a type by implementing Configurer:
//
//	func (ListUsersRequest) QueryOptions() []qs.Option {
//		return []qs.Option{qs.WithNaming(qs.CamelCase)}
//	}
//
// Explicit tag names always win over the policy. Word splitting understands
// Go initialisms, so UserID becomes userId, user_id or USER_ID.
//
// # Encoding Rules
//
// The top-level value must be a struct, a non-nil pointer to a struct or a map
// with string, integer, bool or TextMarshaler keys. Map entries are written in
// key order so output is deterministic. Zero values are written unless the
// field is tagged omitempty. Embedded structs without a tag name are flattened
// into the parent. Keys and values are escaped with url.QueryEscape; the
// brackets of nested keys are written literally.
//
// A struct with no populated fields encodes to an empty string without error.
//
// # Binding
//
// Decode and Bind reverse the process for http handlers:
//
//	var req ListUsersRequest
//	if err := qs.Bind()(r, &req); err != nil {
//		// handle ErrFailedToParseQuery
//	}
//
// # Error Handling
//
// The package defines several error variables:
//
//   - ErrUnsupportedType: the value (or a field) cannot be represented as a
//     query parameter, for example channels, funcs and complex numbers
//   - ErrMarshalText: a TextMarshaler returned an error
//   - ErrInvalidTarget: Decode was given something other than a pointer to struct
//   - ErrFailedToParseQuery: a query value could not be converted to the field type
//   - ErrUnknownNaming, ErrUnknownArrayFormat: invalid textual policy names
//
// Field-level encoding failures are returned as *FieldError carrying the query
// key, and unwrap to the sentinel above.
package qs
