// Package sheet maps candidates onto the destination worksheet and reads it
// back.
package sheet

import (
	"embed"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/csbb5959/sales-challenge-tool/internal/model"
)

//go:embed layouts/*.yaml
var builtinLayouts embed.FS

// LayoutVersion is the descriptor version this package understands.
const LayoutVersion = 1

// Mode selects how new rows are placed.
type Mode string

const (
	// ModeAppend adds rows after the last used row.
	ModeAppend Mode = "append"
	// ModeGap writes rows into the first run of empty name cells below the
	// header block that is long enough, or after the last used row.
	ModeGap Mode = "gap"
)

// Field names a candidate attribute.
type Field string

const (
	FieldName              Field = "name"
	FieldWebsite           Field = "website"
	FieldRegion            Field = "region"
	FieldEmail             Field = "email"
	FieldGroup             Field = "group"
	FieldMember            Field = "member"
	FieldContactName       Field = "contact_name"
	FieldOrgLastContact    Field = "org_last_contact"
	FieldPersonLastContact Field = "person_last_contact"
	FieldPhone             Field = "phone"
	FieldPosition          Field = "position"
	FieldNotes             Field = "notes"
	// FieldConst writes the column's fixed Value.
	FieldConst Field = "const"
)

var knownFields = map[Field]bool{
	FieldName: true, FieldWebsite: true, FieldRegion: true, FieldEmail: true,
	FieldGroup: true, FieldMember: true, FieldContactName: true,
	FieldOrgLastContact: true, FieldPersonLastContact: true,
	FieldPhone: true, FieldPosition: true, FieldNotes: true, FieldConst: true,
}

// Column maps one field onto a 0-based column index.
type Column struct {
	Index  int    `yaml:"index"`
	Field  Field  `yaml:"field"`
	Value  string `yaml:"value,omitempty"`
	Header string `yaml:"header,omitempty"`
}

// Layout is a versioned column-layout descriptor for one destination.
type Layout struct {
	Version    int      `yaml:"version"`
	Name       string   `yaml:"name"`
	Mode       Mode     `yaml:"mode"`
	HeaderRows int      `yaml:"header_rows"`
	Width      int      `yaml:"width"`
	NameColumn int      `yaml:"name_column"`
	Columns    []Column `yaml:"columns"`
}

// LoadLayout reads the descriptor at path, or the built-in layout called
// name when path is empty.
func LoadLayout(name, path string) (*Layout, error) {
	var (
		data []byte
		err  error
	)
	if path != "" {
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, eris.Wrapf(err, "sheet: read layout %s", path)
		}
	} else {
		data, err = builtinLayouts.ReadFile("layouts/" + name + ".yaml")
		if err != nil {
			return nil, eris.Errorf("sheet: unknown layout %q", name)
		}
	}
	return ParseLayout(data)
}

// ParseLayout decodes and validates a YAML descriptor.
func ParseLayout(data []byte) (*Layout, error) {
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, eris.Wrap(err, "sheet: parse layout")
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

// Validate checks the descriptor's internal consistency.
func (l *Layout) Validate() error {
	if l.Version != LayoutVersion {
		return eris.Errorf("sheet: layout %q has version %d, want %d", l.Name, l.Version, LayoutVersion)
	}
	if l.Mode != ModeAppend && l.Mode != ModeGap {
		return eris.Errorf("sheet: layout %q has unknown mode %q", l.Name, l.Mode)
	}
	if l.Width <= 0 {
		return eris.Errorf("sheet: layout %q needs a positive width", l.Name)
	}
	if l.HeaderRows < 0 {
		return eris.Errorf("sheet: layout %q has negative header_rows", l.Name)
	}

	seen := make(map[int]bool, len(l.Columns))
	nameMapped := false
	for _, c := range l.Columns {
		if c.Index < 0 || c.Index >= l.Width {
			return eris.Errorf("sheet: layout %q column %d outside width %d", l.Name, c.Index, l.Width)
		}
		if seen[c.Index] {
			return eris.Errorf("sheet: layout %q maps column %d twice", l.Name, c.Index)
		}
		seen[c.Index] = true
		if !knownFields[c.Field] {
			return eris.Errorf("sheet: layout %q column %d has unknown field %q", l.Name, c.Index, c.Field)
		}
		if c.Field == FieldConst && c.Value == "" {
			return eris.Errorf("sheet: layout %q const column %d has no value", l.Name, c.Index)
		}
		if c.Field == FieldName && c.Index == l.NameColumn {
			nameMapped = true
		}
	}
	if !nameMapped {
		return eris.Errorf("sheet: layout %q must map field name to name_column %d", l.Name, l.NameColumn)
	}
	return nil
}

// Index returns the column of field f, or -1.
func (l *Layout) Index(f Field) int {
	for _, c := range l.Columns {
		if c.Field == f {
			return c.Index
		}
	}
	return -1
}

// Headers returns the header labels by column position.
func (l *Layout) Headers() []string {
	h := make([]string, l.Width)
	for _, c := range l.Columns {
		h[c.Index] = c.Header
	}
	return h
}

// Row renders c as a fixed-width row. Unmapped columns are empty.
func (l *Layout) Row(c model.Candidate) []string {
	row := make([]string, l.Width)
	for _, col := range l.Columns {
		row[col.Index] = strings.TrimSpace(value(c, col))
	}
	return row
}

func value(c model.Candidate, col Column) string {
	switch col.Field {
	case FieldName:
		return c.Name
	case FieldWebsite:
		return c.Website
	case FieldRegion:
		return c.Region
	case FieldEmail:
		return c.Email
	case FieldGroup:
		return c.Meta.Group
	case FieldMember:
		return c.Meta.Member
	case FieldContactName:
		return model.Deref(c.ContactName)
	case FieldOrgLastContact:
		return model.Deref(c.OrgLastContact)
	case FieldPersonLastContact:
		return model.Deref(c.PersonLastContact)
	case FieldPhone:
		return c.Meta.Phone
	case FieldPosition:
		return c.Meta.Position
	case FieldNotes:
		return c.Meta.Notes
	case FieldConst:
		return col.Value
	}
	return ""
}
