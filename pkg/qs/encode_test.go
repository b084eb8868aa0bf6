package qs_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/qsgen/pkg/qs"
)

type camelRequest struct {
	Page     *uint32
	PageSize *uint32
	ID       *string
	UserID   *string
}

func (camelRequest) QueryOptions() []qs.Option {
	return []qs.Option{qs.WithNaming(qs.CamelCase)}
}

type failingText struct{}

func (failingText) MarshalText() ([]byte, error) {
	return nil, errors.New("boom")
}

func ptr[T any](v T) *T { return &v }

func TestEncode(t *testing.T) {
	t.Parallel()

	t.Run("camel case naming keeps declaration order", func(t *testing.T) {
		t.Parallel()

		req := camelRequest{
			Page:     ptr[uint32](1),
			PageSize: ptr[uint32](20),
			ID:       ptr("test_id"),
			UserID:   ptr("user_123"),
		}

		s, err := qs.Encode(req)
		require.NoError(t, err)
		assert.Equal(t, "page=1&pageSize=20&id=test_id&userId=user_123", s)
	})

	t.Run("nil optional fields are omitted", func(t *testing.T) {
		t.Parallel()

		s, err := qs.Encode(camelRequest{ID: ptr("x")})
		require.NoError(t, err)
		assert.Equal(t, "id=x", s)
	})

	t.Run("nil byte slices are omitted", func(t *testing.T) {
		t.Parallel()

		type payload struct {
			Data []byte
			Tags []string
		}

		s, err := qs.Encode(payload{})
		require.NoError(t, err)
		assert.Equal(t, "", s)

		s, err = qs.Encode(payload{Data: []byte{}})
		require.NoError(t, err)
		assert.Equal(t, "Data=", s)

		s, err = qs.Encode(payload{Data: []byte("raw")})
		require.NoError(t, err)
		assert.Equal(t, "Data=raw", s)
	})

	t.Run("no populated fields yields empty string", func(t *testing.T) {
		t.Parallel()

		s, err := qs.Encode(camelRequest{})
		require.NoError(t, err)
		assert.Equal(t, "", s)

		s, err = qs.Encode(struct{}{})
		require.NoError(t, err)
		assert.Equal(t, "", s)
	})

	t.Run("explicit options override type options", func(t *testing.T) {
		t.Parallel()

		req := camelRequest{
			Page:     ptr[uint32](1),
			PageSize: ptr[uint32](20),
			ID:       ptr("test_id"),
			UserID:   ptr("user_123"),
		}

		s, err := qs.Encode(req, qs.WithNaming(qs.SnakeCase))
		require.NoError(t, err)
		assert.Equal(t, "page=1&page_size=20&id=test_id&user_id=user_123", s)
	})

	t.Run("pointer to struct", func(t *testing.T) {
		t.Parallel()

		s, err := qs.Encode(&camelRequest{Page: ptr[uint32](3)})
		require.NoError(t, err)
		assert.Equal(t, "page=3", s)
	})

	t.Run("custom tag name", func(t *testing.T) {
		t.Parallel()

		type request struct {
			Query string `url:"search" query:"q"`
			Page  int    `url:"p"`
			Skip  string `url:"-"`
		}

		s, err := qs.Encode(request{Query: "go", Page: 2, Skip: "x"}, qs.WithTagName("url"))
		require.NoError(t, err)
		assert.Equal(t, "search=go&p=2", s)

		s, err = qs.Encode(request{Query: "go", Page: 2}, qs.WithTagName(""))
		require.NoError(t, err)
		assert.Equal(t, "q=go&Page=2&Skip=", s)
	})

	t.Run("tags rename skip and omitempty", func(t *testing.T) {
		t.Parallel()

		type request struct {
			Query    string `query:"q"`
			Count    int    `query:"count"`
			Limit    int    `query:"limit,omitempty"`
			Active   bool   `query:"active"`
			Internal string `query:"-"`
			Plain    string
			hidden   string
		}

		s, err := qs.Encode(request{Query: "go", Internal: "secret", Plain: "p", hidden: "h"})
		require.NoError(t, err)
		assert.Equal(t, "q=go&count=0&active=false&Plain=p", s)
	})

	t.Run("scalar formatting", func(t *testing.T) {
		t.Parallel()

		type request struct {
			I8    int8    `query:"i8"`
			U64   uint64  `query:"u64"`
			F32   float32 `query:"f32"`
			F64   float64 `query:"f64"`
			Whole float64 `query:"whole"`
			Data  []byte  `query:"data"`
			Any   any     `query:"any"`
			None  any     `query:"none"`
		}

		s, err := qs.Encode(request{
			I8:    -5,
			U64:   18446744073709551615,
			F32:   0.1,
			F64:   1.5,
			Whole: 2,
			Data:  []byte("hi"),
			Any:   5,
		})
		require.NoError(t, err)
		assert.Equal(t, "i8=-5&u64=18446744073709551615&f32=0.1&f64=1.5&whole=2&data=hi&any=5", s)
	})

	t.Run("percent encoding of keys and values", func(t *testing.T) {
		t.Parallel()

		type request struct {
			Name string `query:"user name"`
			Expr string `query:"expr"`
		}

		s, err := qs.Encode(request{Name: "Jane Doe", Expr: "a&b=c/d"})
		require.NoError(t, err)
		assert.Equal(t, "user+name=Jane+Doe&expr=a%26b%3Dc%2Fd", s)
	})

	t.Run("nested structs and maps use brackets", func(t *testing.T) {
		t.Parallel()

		type filter struct {
			Status string   `query:"status"`
			Tags   []string `query:"tags"`
		}
		type request struct {
			Filter filter            `query:"filter"`
			Sort   map[string]string `query:"sort"`
			Extra  *filter           `query:"extra"`
		}

		s, err := qs.Encode(request{
			Filter: filter{Status: "open", Tags: []string{"a b", "c"}},
			Sort:   map[string]string{"name": "asc", "created": "desc"},
		})
		require.NoError(t, err)
		assert.Equal(t, "filter[status]=open&filter[tags][0]=a+b&filter[tags][1]=c&sort[created]=desc&sort[name]=asc", s)
	})

	t.Run("embedded structs are flattened", func(t *testing.T) {
		t.Parallel()

		type Pagination struct {
			Page  int `query:"page"`
			Limit int `query:"limit"`
		}
		type listRequest struct {
			Pagination
			Query string `query:"q"`
		}
		type optionalPage struct {
			*Pagination
			Query string `query:"q"`
		}

		s, err := qs.Encode(listRequest{Pagination: Pagination{Page: 1, Limit: 10}, Query: "go"})
		require.NoError(t, err)
		assert.Equal(t, "page=1&limit=10&q=go", s)

		s, err = qs.Encode(optionalPage{Query: "go"})
		require.NoError(t, err)
		assert.Equal(t, "q=go", s)
	})

	t.Run("text marshalers", func(t *testing.T) {
		t.Parallel()

		type request struct {
			ID uuid.UUID `query:"id"`
			At time.Time `query:"at"`
		}

		id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
		s, err := qs.Encode(request{ID: id, At: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)})
		require.NoError(t, err)
		assert.Equal(t, "id=6ba7b810-9dad-11d1-80b4-00c04fd430c8&at=2024-01-02T03%3A04%3A05Z", s)
	})

	t.Run("top-level map is sorted", func(t *testing.T) {
		t.Parallel()

		s, err := qs.Encode(map[string]int{"b": 2, "a": 1})
		require.NoError(t, err)
		assert.Equal(t, "a=1&b=2", s)
	})

	t.Run("repeated calls are identical", func(t *testing.T) {
		t.Parallel()

		req := map[string]any{"z": 1, "y": []int{1, 2}, "x": map[string]bool{"k": true}}
		first, err := qs.Encode(req)
		require.NoError(t, err)
		for range 10 {
			next, err := qs.Encode(req)
			require.NoError(t, err)
			assert.Equal(t, first, next)
		}
		assert.Equal(t, "x[k]=true&y[0]=1&y[1]=2&z=1", first)
	})
}

func TestEncode_ArrayFormats(t *testing.T) {
	t.Parallel()

	type request struct {
		Tags []string `query:"tags"`
		IDs  []*int   `query:"ids"`
	}
	req := request{Tags: []string{"a", "b"}, IDs: []*int{ptr(1), nil, ptr(3)}}

	tests := []struct {
		name   string
		format qs.ArrayFormat
		want   string
	}{
		{"indexed", qs.ArrayIndexed, "tags[0]=a&tags[1]=b&ids[0]=1&ids[2]=3"},
		{"repeat", qs.ArrayRepeat, "tags=a&tags=b&ids=1&ids=3"},
		{"comma", qs.ArrayComma, "tags=a%2Cb&ids=1%2C3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, err := qs.Encode(req, qs.WithArrayFormat(tt.format))
			require.NoError(t, err)
			assert.Equal(t, tt.want, s)
		})
	}

	t.Run("comma rejects nested elements", func(t *testing.T) {
		t.Parallel()

		type nested struct {
			Items []struct{ A int } `query:"items"`
		}
		_, err := qs.Encode(nested{Items: []struct{ A int }{{A: 1}}}, qs.WithArrayFormat(qs.ArrayComma))
		require.Error(t, err)
		assert.ErrorIs(t, err, qs.ErrUnsupportedType)
	})

	t.Run("empty slice writes nothing", func(t *testing.T) {
		t.Parallel()

		s, err := qs.Encode(request{Tags: []string{}})
		require.NoError(t, err)
		assert.Equal(t, "", s)
	})
}

func TestEncode_Errors(t *testing.T) {
	t.Parallel()

	t.Run("unsupported field types", func(t *testing.T) {
		t.Parallel()

		type withChan struct {
			Name string   `query:"name"`
			Ch   chan int `query:"ch"`
		}
		type withFunc struct {
			Fn func() `query:"fn"`
		}
		type withComplex struct {
			Nested struct {
				C complex128 `query:"c"`
			} `query:"nested"`
		}

		cases := []struct {
			name  string
			value any
			field string
		}{
			{"chan", withChan{Name: "x", Ch: make(chan int)}, "ch"},
			{"nil func", withFunc{}, "fn"},
			{"nested complex", withComplex{}, "nested[c]"},
		}

		for _, tc := range cases {
			s, err := qs.Encode(tc.value)
			require.Error(t, err, tc.name)
			assert.Empty(t, s, tc.name)
			assert.ErrorIs(t, err, qs.ErrUnsupportedType, tc.name)

			var fe *qs.FieldError
			require.ErrorAs(t, err, &fe, tc.name)
			assert.Equal(t, tc.field, fe.Field, tc.name)
		}
	})

	t.Run("unsupported top-level values", func(t *testing.T) {
		t.Parallel()

		for _, v := range []any{nil, 42, "page=1", []string{"a"}, (*camelRequest)(nil), time.Now()} {
			_, err := qs.Encode(v)
			require.Error(t, err)
			assert.ErrorIs(t, err, qs.ErrUnsupportedType)
		}
	})

	t.Run("unsupported map key", func(t *testing.T) {
		t.Parallel()

		type request struct {
			M map[[2]int]string `query:"m"`
		}
		_, err := qs.Encode(request{M: map[[2]int]string{{1, 2}: "x"}})
		require.Error(t, err)
		assert.ErrorIs(t, err, qs.ErrUnsupportedType)
		assert.Contains(t, err.Error(), `field "m"`)
	})

	t.Run("text marshaler failure", func(t *testing.T) {
		t.Parallel()

		type request struct {
			Value failingText `query:"value"`
		}
		_, err := qs.Encode(request{})
		require.Error(t, err)
		assert.ErrorIs(t, err, qs.ErrMarshalText)
		assert.Contains(t, err.Error(), "boom")
	})
}

func TestMarshal(t *testing.T) {
	t.Parallel()

	type request struct {
		Q      string            `query:"q"`
		Filter map[string]string `query:"filter"`
		Tags   []string          `query:"tags"`
	}

	values, err := qs.Marshal(request{
		Q:      "go lang",
		Filter: map[string]string{"status": "open"},
		Tags:   []string{"a", "b"},
	}, qs.WithArrayFormat(qs.ArrayRepeat))
	require.NoError(t, err)

	assert.Equal(t, 4, values.Len())
	assert.Equal(t, []string{"q", "filter[status]", "tags", "tags"}, values.Keys())
	assert.Equal(t, "go lang", values.Get("q"))
	assert.Equal(t, "open", values.Get("filter[status]"))
	assert.Equal(t, "a", values.Get("tags"))
	assert.Equal(t, "", values.Get("missing"))
	assert.Equal(t, []string{"a", "b"}, values.URLValues()["tags"])
	assert.Equal(t, "q=go+lang&filter[status]=open&tags=a&tags=b", values.Encode())
}

func TestParseArrayFormat(t *testing.T) {
	t.Parallel()

	f, err := qs.ParseArrayFormat("")
	require.NoError(t, err)
	assert.Equal(t, qs.ArrayIndexed, f)

	f, err = qs.ParseArrayFormat("repeat")
	require.NoError(t, err)
	assert.Equal(t, qs.ArrayRepeat, f)

	_, err = qs.ParseArrayFormat("brackets")
	assert.ErrorIs(t, err, qs.ErrUnknownArrayFormat)
}
