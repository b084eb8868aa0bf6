package qs

import (
	"net/http"
)

// Bind creates a query parameter binder function compatible with the
// func(r *http.Request, v any) error binder signature.
//
// Keys are resolved exactly as Encode writes them, so a URL built from
// Encode on the client side binds back into the same struct:
//
//	type SearchRequest struct {
//		Query    string   `query:"q"`
//		Page     int      `query:"page"`
//		PageSize int      `query:"page_size"`
//		Tags     []string `query:"tags"`   // ?tags=go&tags=web or ?tags[0]=go&tags[1]=web
//		Active   *bool    `query:"active"` // Optional
//		Internal string   `query:"-"`      // Skipped
//	}
//
//	func searchHandler(w http.ResponseWriter, r *http.Request) {
//		var req SearchRequest
//		if err := qs.Bind()(r, &req); err != nil {
//			http.Error(w, err.Error(), http.StatusBadRequest)
//			return
//		}
//		// req is populated from query parameters
//	}
func Bind(opts ...Option) func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		return Decode(r.URL.RawQuery, v, opts...)
	}
}
