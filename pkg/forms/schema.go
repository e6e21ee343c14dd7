// Package forms implements declarative field schemas, a pure validator, and a
// form state controller for the RCM and HR submission flows. A Schema declares
// the fields of one form; Values holds the user's current input; Validate maps
// Values against the Schema into per-field error messages.
package forms

import "regexp"

// Values holds the current value of every form field, keyed by field name.
// Values are strings, []string for multi-select fields, or File for uploads.
type Values map[string]any

// Errors maps field names to validation error messages. A field absent from
// the map is valid. Keys are always a subset of the schema's field names.
type Errors map[string]string

// File is a file-valued form field, submitted as a multipart file part.
type File struct {
	Name        string
	ContentType string
	Content     []byte
}

// CustomRule is a cross-field validation rule. Check receives the field's own
// value and the full value set; returning false records Message for the field.
type CustomRule struct {
	Check   func(value any, values Values) bool
	Message string
}

// Rule declares the validation constraints for a single field.
type Rule struct {
	Required        bool
	RequiredMessage string // defaults to "<label> is required"
	MinLen          int
	MinLenMessage   string
	Pattern         *regexp.Regexp // checked only when the value is non-empty
	PatternMessage  string
	Custom          []CustomRule
}

// Field is a single named entry of a form schema.
type Field struct {
	Name    string
	Label   string // human-readable name used in default messages
	Default any
	Rule    Rule
}

// Schema is an immutable ordered description of a form's fields. Build one
// with NewSchema and do not mutate it afterwards; a single Schema instance is
// shared by every controller for that page.
type Schema struct {
	fields []Field
	byName map[string]int
}

// NewSchema builds a schema from an ordered field list.
func NewSchema(fields ...Field) *Schema {
	s := &Schema{
		fields: append([]Field(nil), fields...),
		byName: make(map[string]int, len(fields)),
	}
	for i, f := range s.fields {
		s.byName[f.Name] = i
	}
	return s
}

// Fields returns the schema's fields in declaration order.
func (s *Schema) Fields() []Field {
	return append([]Field(nil), s.fields...)
}

// Field looks up a field by name.
func (s *Schema) Field(name string) (Field, bool) {
	i, ok := s.byName[name]
	if !ok {
		return Field{}, false
	}
	return s.fields[i], true
}

// Has reports whether the schema declares the named field.
func (s *Schema) Has(name string) bool {
	_, ok := s.byName[name]
	return ok
}

// Defaults returns a fresh value set initialised to each field's declared
// default. Fields without an explicit default start as the empty string.
func (s *Schema) Defaults() Values {
	v := make(Values, len(s.fields))
	for _, f := range s.fields {
		if f.Default != nil {
			v[f.Name] = f.Default
			continue
		}
		v[f.Name] = ""
	}
	return v
}

// isEmpty reports whether a field value counts as absent for validation.
// Multi-value fields are empty when the selection set is empty.
func isEmpty(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case []string:
		return len(val) == 0
	case File:
		return len(val.Content) == 0
	case *File:
		return val == nil || len(val.Content) == 0
	default:
		return false
	}
}

// String returns the field value as a string, or "" for non-string values.
func (v Values) String(name string) string {
	s, _ := v[name].(string)
	return s
}

// Strings returns the field value as a string slice for multi-value fields.
func (v Values) Strings(name string) []string {
	s, _ := v[name].([]string)
	return s
}
