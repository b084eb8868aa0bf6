// Package generator implements the qsgen code generator.
//
// A Generator parses the non-test Go files of one package directory, selects
// struct types marked with the //qs:generate directive (or named explicitly in
// Config.Types) and writes a single file declaring two methods per type:
//
//	func (p SearchParams) ToQueryString() string
//	func (p SearchParams) TryToQueryString() (string, error)
//
// TryToQueryString delegates to qs.Encode. ToQueryString calls it and returns
// an empty string on failure, so both methods agree whenever encoding
// succeeds.
//
// Selected types are checked before anything is written. Aliases, non-struct
// types, fields that can never be query parameters (channels, funcs, complex
// numbers, unsafe.Pointer) and existing methods with the generated names are
// reported together, each with its source position.
//
// Usage:
//
//	g, err := generator.New(generator.DefaultConfig(), generator.WithLogger(log))
//	if err != nil {
//		return err
//	}
//	res, err := g.Run(ctx, ".")
package generator
