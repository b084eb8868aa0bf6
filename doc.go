// Package qsgen turns Go structs into URL query strings through generated
// methods.
//
// Annotate a struct with the qs:generate directive and run the qsgen command
// (usually via go generate). Every annotated type gains two methods:
//
//	ToQueryString() string
//	TryToQueryString() (string, error)
//
// TryToQueryString hands the value to qs.Encode and returns its result
// unchanged. ToQueryString calls TryToQueryString and returns an empty string
// on failure, which cannot be told apart from a record that legitimately
// encodes to nothing.
//
// Basic Usage:
//
//	//go:generate go run github.com/dmitrymomot/qsgen/cmd/qsgen
//
//	//qs:generate
//	type ListUsersRequest struct {
//		Page     *int    `query:"page"`
//		PageSize *int    `query:"pageSize"`
//		ID       *string `query:"id"`
//	}
//
//	func (ListUsersRequest) QueryOptions() []qs.Option {
//		return []qs.Option{qs.WithNaming(qs.CamelCase)}
//	}
//
//	req := ListUsersRequest{Page: &page, PageSize: &size}
//	req.ToQueryString() // page=1&pageSize=20
//
// All renaming, omission, flattening and escaping rules belong to package qs;
// the generator adds nothing of its own. Types that should not be generated can
// use the generic helpers ToQueryString and TryToQueryString from this package,
// which follow the same rules.
//
// Generated types satisfy the Encoder interface, so they can be passed to
// helpers such as AppendQuery:
//
//	link, err := qsgen.AppendQuery("https://api.example.com/users", req)
package qsgen
