package store

import "strings"

const maxIdentifierLength = 63

// ValidateIdentifier checks that name is usable verbatim as a table or column
// name: ASCII letters, digits and underscores only, not starting with a digit.
func ValidateIdentifier(name string) error {
	return validateIdentifier("identifier", name)
}

func validateIdentifier(field string, name string) error {
	if name == "" {
		return validationErrorf(field, "must not be empty")
	}

	if len(name) > maxIdentifierLength {
		return validationErrorf(field, "%q is longer than %d bytes", name, maxIdentifierLength)
	}

	for i := 0; i < len(name); i++ {
		c := name[i]
		isLetter := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
		isNum := c >= '0' && c <= '9'
		if isNum && i == 0 {
			return validationErrorf(field, "%q must not start with a digit", name)
		}

		if !isLetter && !isNum && c != '_' {
			return validationErrorf(field, "%q contains invalid character %q", name, c)
		}
	}

	return nil
}

// TableDef names a table, optionally qualified by its schema.
type TableDef struct {
	Schema string
	Name   string
}

// ParseTableName accepts "table" or "schema.table".
func ParseTableName(name string) (TableDef, error) {
	var tb TableDef
	parts := strings.Split(name, ".")
	switch len(parts) {
	case 1:
		tb.Name = parts[0]
	case 2:
		tb.Schema, tb.Name = parts[0], parts[1]
	default:
		return tb, validationErrorf("table", "%q has too many qualifiers", name)
	}

	if err := tb.Validate(); err != nil {
		return TableDef{}, err
	}

	return tb, nil
}

func (t TableDef) Validate() error {
	if t.Schema != "" {
		if err := validateIdentifier("schema", t.Schema); err != nil {
			return err
		}
	}

	return validateIdentifier("table", t.Name)
}

func (t TableDef) FullTableName() string {
	if t.Schema == "" {
		return t.Name
	}

	return t.Schema + "." + t.Name
}

func validateColumns(field string, columns []string) error {
	seen := make(map[string]struct{}, len(columns))
	for _, col := range columns {
		if err := validateIdentifier(field, col); err != nil {
			return err
		}

		key := strings.ToLower(col)
		if _, ok := seen[key]; ok {
			return validationErrorf(field, "%q is listed more than once", col)
		}
		seen[key] = struct{}{}
	}

	return nil
}
