package catalog

import "strings"

// StructField is one member of a typedef'd struct.
type StructField struct {
	FieldName    string
	DeclaredType string
}

// VariableDeclaration binds a usage-file instance to its struct type.
type VariableDeclaration struct {
	StructType   string
	InstanceName string
}

// StructDefinition holds the ordered members of one struct.
type StructDefinition struct {
	Name   string
	Fields []StructField
}

// NewStructField builds a field, appending the array size to the declared
// type when one is given ("char" + "10" -> "char[10]").
func NewStructField(declaredType, fieldName, arraySize string) StructField {
	if arraySize != "" {
		declaredType = declaredType + "[" + arraySize + "]"
	}
	return StructField{FieldName: fieldName, DeclaredType: declaredType}
}

// AddField appends f unless its type or name is empty. It reports whether
// the field was kept.
func (d *StructDefinition) AddField(f StructField) bool {
	if strings.TrimSpace(f.DeclaredType) == "" || strings.TrimSpace(f.FieldName) == "" {
		return false
	}
	d.Fields = append(d.Fields, f)
	return true
}

// FieldByName returns the first field named name.
func (d *StructDefinition) FieldByName(name string) (StructField, bool) {
	for _, f := range d.Fields {
		if f.FieldName == name {
			return f, true
		}
	}
	return StructField{}, false
}

// FieldByType returns the first field declared with typ.
func (d *StructDefinition) FieldByType(typ string) (StructField, bool) {
	for _, f := range d.Fields {
		if f.DeclaredType == typ {
			return f, true
		}
	}
	return StructField{}, false
}
