package qs

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Naming is a renaming policy applied to Go field names that carry no
// explicit key in their struct tag.
type Naming string

const (
	// Identity keeps the Go field name as declared.
	Identity Naming = ""
	// CamelCase renders UserID as userId.
	CamelCase Naming = "camelCase"
	// PascalCase renders UserID as UserId.
	PascalCase Naming = "PascalCase"
	// SnakeCase renders UserID as user_id.
	SnakeCase Naming = "snake_case"
	// ScreamingSnakeCase renders UserID as USER_ID.
	ScreamingSnakeCase Naming = "SCREAMING_SNAKE_CASE"
	// KebabCase renders UserID as user-id.
	KebabCase Naming = "kebab-case"
	// LowerCase renders UserID as userid.
	LowerCase Naming = "lowercase"
)

// ParseNaming converts a policy name into a Naming. Besides the constant
// values it accepts the short forms camel, pascal, snake, screaming_snake,
// kebab, lower and identity.
func ParseNaming(s string) (Naming, error) {
	switch s {
	case "", "identity", "none":
		return Identity, nil
	case string(CamelCase), "camel":
		return CamelCase, nil
	case string(PascalCase), "pascal":
		return PascalCase, nil
	case string(SnakeCase), "snake":
		return SnakeCase, nil
	case string(ScreamingSnakeCase), "screaming_snake":
		return ScreamingSnakeCase, nil
	case string(KebabCase), "kebab":
		return KebabCase, nil
	case string(LowerCase), "lower":
		return LowerCase, nil
	}
	return Identity, fmt.Errorf("%w: %q", ErrUnknownNaming, s)
}

// Apply renames a Go identifier according to the policy.
// Unknown policies behave like Identity.
func (n Naming) Apply(name string) string {
	switch n {
	case CamelCase, PascalCase, SnakeCase, ScreamingSnakeCase, KebabCase:
	case LowerCase:
		return cases.Lower(language.Und).String(name)
	default:
		return name
	}

	words := splitWords(name)
	if len(words) == 0 {
		return name
	}

	// Casers hold state and are not shared between calls.
	lower := cases.Lower(language.Und)
	switch n {
	case CamelCase, PascalCase:
		title := cases.Title(language.Und)
		var b strings.Builder
		for i, w := range words {
			if i == 0 && n == CamelCase {
				b.WriteString(lower.String(w))
				continue
			}
			b.WriteString(title.String(w))
		}
		return b.String()
	case ScreamingSnakeCase:
		return cases.Upper(language.Und).String(strings.Join(words, "_"))
	case KebabCase:
		return lower.String(strings.Join(words, "-"))
	default:
		return lower.String(strings.Join(words, "_"))
	}
}

// splitWords breaks a Go identifier into words. Runs of capitals are kept
// together as an initialism (HTTPServer is HTTP, Server) and a trailing
// plural s stays attached to it (IDs is one word). Underscores, hyphens and
// spaces separate words. Digits stick to the preceding word.
func splitWords(s string) []string {
	runes := []rune(s)
	words := make([]string, 0, 4)
	start := 0
	flush := func(end int) {
		if end > start {
			words = append(words, string(runes[start:end]))
		}
	}

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '_' || r == '-' || unicode.IsSpace(r) {
			flush(i)
			start = i + 1
			continue
		}
		if i == start || !unicode.IsUpper(r) {
			continue
		}

		prev := runes[i-1]
		switch {
		case unicode.IsLower(prev) || unicode.IsDigit(prev):
			flush(i)
			start = i
		case unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1]):
			if runes[i+1] == 's' && i+2 == len(runes) {
				continue
			}
			flush(i)
			start = i
		}
	}
	flush(len(runes))

	return words
}
