package generator

import (
	"bytes"
	"embed"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"
	"unicode"

	"golang.org/x/tools/imports"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var fileTemplate = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

type fileData struct {
	Package string
	Import  string
	Alias   string
	Tags    string
	Types   []typeData
}

type typeData struct {
	Name     string
	Receiver string
	RecvType string
}

// Render produces the gofmt-formatted source of the generated file for pkg.
func (g *Generator) Render(pkg *Package) ([]byte, error) {
	data := fileData{
		Package: pkg.Name,
		Import:  g.cfg.Import,
		Alias:   g.cfg.importAlias(),
		Tags:    g.cfg.Tags,
		Types:   make([]typeData, 0, len(pkg.Types)),
	}
	for _, t := range pkg.Types {
		data.Types = append(data.Types, typeData{
			Name:     t.Name,
			Receiver: receiverName(t),
			RecvType: g.receiverType(t),
		})
	}

	var buf bytes.Buffer
	if err := fileTemplate.ExecuteTemplate(&buf, "querystring.go.tmpl", data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	src, err := imports.Process(filepath.Join(pkg.Dir, g.cfg.Output), buf.Bytes(), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	return src, nil
}

func (g *Generator) receiverType(t Type) string {
	name := t.Name
	if len(t.TypeParams) > 0 {
		name += "[" + strings.Join(t.TypeParams, ", ") + "]"
	}
	if g.cfg.Receiver == PointerReceiver {
		return "*" + name
	}
	return name
}

// receiverName is the lowercased first letter of the type name. When that
// letter is unusable or taken by a type parameter, the first free name of r,
// recv, recv1, recv2... is used.
func receiverName(t Type) string {
	taken := make(map[string]bool, len(t.TypeParams)+1)
	for _, p := range t.TypeParams {
		taken[p] = true
	}
	// Identifiers of the generated method bodies.
	taken["qs"] = true
	taken["query"] = true
	taken["err"] = true

	first := []rune(t.Name)[0]
	if unicode.IsLetter(first) {
		if name := string(unicode.ToLower(first)); !taken[name] {
			return name
		}
	}
	for _, name := range []string{"r", "recv"} {
		if !taken[name] {
			return name
		}
	}
	for i := 1; ; i++ {
		if name := "recv" + strconv.Itoa(i); !taken[name] {
			return name
		}
	}
}
