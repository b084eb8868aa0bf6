package qs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/qsgen/pkg/qs"
)

func TestNaming_Apply(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input  string
		naming qs.Naming
		want   string
	}{
		{"UserID", qs.Identity, "UserID"},
		{"UserID", qs.CamelCase, "userId"},
		{"UserID", qs.PascalCase, "UserId"},
		{"UserID", qs.SnakeCase, "user_id"},
		{"UserID", qs.ScreamingSnakeCase, "USER_ID"},
		{"UserID", qs.KebabCase, "user-id"},
		{"UserID", qs.LowerCase, "userid"},
		{"PageSize", qs.CamelCase, "pageSize"},
		{"PageSize", qs.SnakeCase, "page_size"},
		{"ID", qs.CamelCase, "id"},
		{"ID", qs.SnakeCase, "id"},
		{"HTTPServer", qs.SnakeCase, "http_server"},
		{"HTTPServer", qs.CamelCase, "httpServer"},
		{"IDs", qs.SnakeCase, "ids"},
		{"Page2Size", qs.SnakeCase, "page2_size"},
		{"already_snake", qs.CamelCase, "alreadySnake"},
		{"Page", qs.Naming("unknown"), "Page"},
	}

	for _, tt := range tests {
		t.Run(string(tt.naming)+"/"+tt.input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.naming.Apply(tt.input))
		})
	}
}

func TestParseNaming(t *testing.T) {
	t.Parallel()

	valid := map[string]qs.Naming{
		"":                     qs.Identity,
		"identity":             qs.Identity,
		"camelCase":            qs.CamelCase,
		"camel":                qs.CamelCase,
		"PascalCase":           qs.PascalCase,
		"snake_case":           qs.SnakeCase,
		"snake":                qs.SnakeCase,
		"SCREAMING_SNAKE_CASE": qs.ScreamingSnakeCase,
		"kebab-case":           qs.KebabCase,
		"lowercase":            qs.LowerCase,
	}
	for in, want := range valid {
		got, err := qs.ParseNaming(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := qs.ParseNaming("Train-Case")
	require.Error(t, err)
	assert.ErrorIs(t, err, qs.ErrUnknownNaming)
}
