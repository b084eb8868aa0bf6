package qs_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/qsgen/pkg/qs"
)

func TestBind(t *testing.T) {
	t.Parallel()

	bind := qs.Bind()

	r := chi.NewRouter()
	r.Get("/search", func(w http.ResponseWriter, req *http.Request) {
		var in searchRequest
		if err := bind(req, &in); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(in)
	})

	t.Run("binds an encoded query", func(t *testing.T) {
		t.Parallel()

		query, err := qs.Encode(searchRequest{
			Query:  "go",
			Page:   2,
			Tags:   []string{"a", "b"},
			Filter: searchFilter{Status: "open"},
		})
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/search?"+query, nil))

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var got searchRequest
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "go", got.Query)
		assert.Equal(t, 2, got.Page)
		assert.Equal(t, []string{"a", "b"}, got.Tags)
		assert.Equal(t, "open", got.Filter.Status)
	})

	t.Run("rejects invalid values", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/search?page=two", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "failed to parse query parameters")
	})
}
