package features

// FieldKind is the semantic type of a required input column.
type FieldKind int

const (
	FieldTimestamp FieldKind = iota
	FieldNumeric
)

// Field is one required column of a differences file.
type Field struct {
	Name string
	Kind FieldKind
}

// Schema is the fixed set of columns an extractor requires from a
// differences file, in the order the extractor expects their values.
// Extra columns in the input are ignored.
type Schema struct {
	Fields []Field
}

// ValidationResult maps the schema onto a concrete CSV header. Missing lists
// required columns absent from the header; Index gives the header position of
// each required column that was found.
type ValidationResult struct {
	Missing []string
	Index   map[string]int
}

// OK reports whether every required column is present.
func (r ValidationResult) OK() bool {
	return len(r.Missing) == 0
}

// Validate checks a CSV header row against the schema. The check is performed
// once per file; the returned index is reused for every data row.
func (s Schema) Validate(header []string) ValidationResult {
	pos := make(map[string]int, len(header))
	for i, name := range header {
		if _, seen := pos[name]; !seen {
			pos[name] = i
		}
	}

	result := ValidationResult{Index: make(map[string]int, len(s.Fields))}
	for _, f := range s.Fields {
		i, ok := pos[f.Name]
		if !ok {
			result.Missing = append(result.Missing, f.Name)
			continue
		}
		result.Index[f.Name] = i
	}
	return result
}

// NumericFields returns the names of the schema's numeric columns in schema
// order. Sample values are stored in this order.
func (s Schema) NumericFields() []string {
	var names []string
	for _, f := range s.Fields {
		if f.Kind == FieldNumeric {
			names = append(names, f.Name)
		}
	}
	return names
}
