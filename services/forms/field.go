package forms

import "fmt"

// Kind identifies how a field is rendered and which value shape it holds.
type Kind string

const (
	KindText     Kind = "text"
	KindTextarea Kind = "textarea"
	KindSelect   Kind = "select"
	KindToggle   Kind = "toggle"
	KindNumber   Kind = "number"
	KindFile     Kind = "file"
	KindGroup    Kind = "group"
)

// FileHandle is the opaque handle produced by the frontend file picker.
// The engine only checks existence and displays name/size; file contents
// never reach the API.
type FileHandle struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// HumanSize renders the byte size for display (e.g. "2.4 MB").
func (f FileHandle) HumanSize() string {
	const unit = 1024
	if f.Size < unit {
		return fmt.Sprintf("%d B", f.Size)
	}
	div, exp := int64(unit), 0
	for n := f.Size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(f.Size)/float64(div), "KMGTPE"[exp])
}

// Values maps field names to raw field values: string, bool, FileHandle,
// or []Values for repeatable groups. Number inputs arrive as strings.
type Values map[string]any

// Clone returns a deep copy. Group slices are copied element by element so
// callers can hand out snapshots without sharing mutable state.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for k, val := range v {
		switch t := val.(type) {
		case []Values:
			rows := make([]Values, len(t))
			for i, row := range t {
				rows[i] = row.Clone()
			}
			out[k] = rows
		default:
			out[k] = val
		}
	}
	return out
}

// Field declares one input in a section. Visibility is part of the data
// model: required-ness is only evaluated while VisibleWhen holds.
type Field struct {
	Name  string
	Label string
	Kind  Kind
	Rule  Rule

	// VisibleWhen gates rendering and validation. Nil means always visible.
	VisibleWhen func(Values) bool

	// AutoFill marks fields populated by a cascade; they render read-only
	// but still participate in required checks.
	AutoFill bool

	// Options lists the choices for select fields (display only).
	Options []string
}

// Visible reports whether the field is part of the rendered and validated
// surface for the given values.
func (f Field) Visible(values Values) bool {
	if f.VisibleWhen == nil {
		return true
	}
	return f.VisibleWhen(values)
}

// WhenEquals builds a visibility predicate that holds while the named
// controlling field equals want.
func WhenEquals(name, want string) func(Values) bool {
	return func(v Values) bool {
		s, _ := v[name].(string)
		return s == want
	}
}

// WhenTrue builds a visibility predicate for toggle-controlled fields.
func WhenTrue(name string) func(Values) bool {
	return func(v Values) bool {
		b, _ := v[name].(bool)
		return b
	}
}

// normalize coerces JSON-decoded values into the shapes the rule
// interpreter expects: file handles arrive as {"name","size"} objects and
// group rows as []any of objects.
func normalize(f Field, value any) any {
	switch f.Kind {
	case KindFile:
		if m, ok := value.(map[string]any); ok {
			h := FileHandle{}
			h.Name, _ = m["name"].(string)
			switch sz := m["size"].(type) {
			case float64:
				h.Size = int64(sz)
			case int64:
				h.Size = sz
			case int:
				h.Size = int64(sz)
			}
			return h
		}
	case KindGroup:
		if rows, ok := value.([]any); ok {
			out := make([]Values, 0, len(rows))
			for _, r := range rows {
				if m, ok := r.(map[string]any); ok {
					out = append(out, Values(m))
				}
			}
			return out
		}
	}
	return value
}
