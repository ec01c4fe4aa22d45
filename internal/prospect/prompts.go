package prospect

import (
	"bytes"
	"embed"
	"io/fs"
	"os"
	"strings"
	"text/template"

	"github.com/rotisserie/eris"
)

//go:embed prompts/*.txt
var builtinPrompts embed.FS

// Kind selects a prompt template.
type Kind string

const (
	KindMedium Kind = "medium"
	KindSmall  Kind = "small"
	KindCustom Kind = "custom"
)

// Count bounds for the number of requested companies.
const (
	MinCount     = 1
	MaxCount     = 100
	DefaultCount = 20
)

const structureFile = "structure.txt"

// Catalog renders prompt templates. Files in an override directory win over
// the embedded ones by name (<kind>.txt, structure.txt).
type Catalog struct {
	override fs.FS
}

// NewCatalog creates a Catalog. An empty dir uses only the embedded prompts.
func NewCatalog(dir string) *Catalog {
	c := &Catalog{}
	if dir != "" {
		c.override = os.DirFS(dir)
	}
	return c
}

// Render builds the prompt sent to the model. Every prompt ends with the
// output-structure suffix that the line parser expects.
func (c *Catalog) Render(kind Kind, count int, custom string) (string, error) {
	if count == 0 {
		count = DefaultCount
	}
	if count < MinCount || count > MaxCount {
		return "", eris.Errorf("prospect: count %d out of range [%d, %d]", count, MinCount, MaxCount)
	}

	suffix, err := c.read(structureFile)
	if err != nil {
		return "", err
	}

	var body string
	switch kind {
	case KindCustom:
		body = strings.TrimSpace(custom)
		if body == "" {
			return "", eris.New("prospect: custom prompt is empty")
		}
	case KindMedium, KindSmall:
		raw, err := c.read(string(kind) + ".txt")
		if err != nil {
			return "", err
		}
		body, err = execute(string(kind), raw, count)
		if err != nil {
			return "", err
		}
	default:
		return "", eris.Errorf("prospect: unknown prompt kind %q", kind)
	}

	return strings.TrimSpace(body) + "\n" + suffix, nil
}

func (c *Catalog) read(name string) (string, error) {
	if c.override != nil {
		if b, err := fs.ReadFile(c.override, name); err == nil {
			return string(b), nil
		}
	}
	b, err := builtinPrompts.ReadFile("prompts/" + name)
	if err != nil {
		return "", eris.Wrapf(err, "prospect: read prompt %s", name)
	}
	return string(b), nil
}

func execute(name, raw string, count int) (string, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(raw)
	if err != nil {
		return "", eris.Wrapf(err, "prospect: parse prompt %s", name)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, struct{ Count int }{count}); err != nil {
		return "", eris.Wrapf(err, "prospect: render prompt %s", name)
	}
	return buf.String(), nil
}
