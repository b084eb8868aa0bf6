package generator

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// Receiver selects the receiver kind of generated methods.
type Receiver string

const (
	// ValueReceiver generates func (r T). The methods are then available on
	// both T and *T.
	ValueReceiver Receiver = "value"
	// PointerReceiver generates func (r *T). A nil *T encodes with an error,
	// so ToQueryString returns "".
	PointerReceiver Receiver = "pointer"
)

const (
	// DefaultOutput is the generated file name inside the package directory.
	DefaultOutput = "querystring_gen.go"
	// DefaultImport is the serialization package called by generated code.
	DefaultImport = "github.com/dmitrymomot/qsgen/pkg/qs"
	// Directive marks a type for generation when it appears in the type's doc comment.
	Directive = "//qs:generate"
)

// Config controls what is generated and where. Zero values fall back to defaults.
type Config struct {
	// Output is the generated file name, relative to the package directory.
	Output string `yaml:"output"`
	// Receiver is "value" (default) or "pointer".
	Receiver Receiver `yaml:"receiver"`
	// Import is the import path of the serialization package.
	Import string `yaml:"import"`
	// Types lists type names to generate in addition to annotated ones.
	Types []string `yaml:"types"`
	// Tags is an optional build constraint expression for the generated file.
	Tags string `yaml:"tags"`
}

// DefaultConfig returns the configuration used when nothing is specified.
func DefaultConfig() Config {
	return Config{
		Output:   DefaultOutput,
		Receiver: ValueReceiver,
		Import:   DefaultImport,
	}
}

// withDefaults fills empty fields and validates the rest.
func (c Config) withDefaults() (Config, error) {
	d := DefaultConfig()
	if c.Output == "" {
		c.Output = d.Output
	}
	if c.Receiver == "" {
		c.Receiver = d.Receiver
	}
	if c.Import == "" {
		c.Import = d.Import
	}

	switch c.Receiver {
	case ValueReceiver, PointerReceiver:
	default:
		return c, fmt.Errorf("%w: receiver must be %q or %q, got %q", ErrInvalidConfig, ValueReceiver, PointerReceiver, c.Receiver)
	}
	if filepath.Base(c.Output) != c.Output || !strings.HasSuffix(c.Output, ".go") || strings.HasSuffix(c.Output, "_test.go") {
		return c, fmt.Errorf("%w: output must be a non-test .go file name, got %q", ErrInvalidConfig, c.Output)
	}

	var types []string
	for _, t := range c.Types {
		if t = strings.TrimSpace(t); t != "" {
			types = append(types, t)
		}
	}
	c.Types = types
	c.Tags = strings.TrimSpace(c.Tags)

	return c, nil
}

// importAlias returns "qs" when the import path does not end in qs, so
// generated code can always refer to the package as qs.
func (c Config) importAlias() string {
	if path.Base(c.Import) == "qs" {
		return ""
	}
	return "qs"
}
