package lattice

import "fmt"

// Field is a (name, dtype) pair (spec.md §3).
type Field struct {
	Name  string
	Dtype Dtype
}

// Schema is an ordered sequence of Fields with unique names.
type Schema struct {
	Fields []Field
}

// NewSchema builds a Schema, rejecting duplicate field names.
func NewSchema(fields ...Field) (Schema, error) {
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if _, ok := seen[f.Name]; ok {
			return Schema{}, NewSchemaMismatchError(fmt.Sprintf("duplicate field name %q in schema", f.Name))
		}
		seen[f.Name] = struct{}{}
	}
	return Schema{Fields: fields}, nil
}

// FieldByName looks up a field by name.
func (s Schema) FieldByName(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Names returns the schema's field names in order.
func (s Schema) Names() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}
