package catalog

// Catalog is the symbol table for one generation run: every struct
// definition found in header input and every top-level variable found in
// usage input. Lookups are first-wins in insertion order.
type Catalog struct {
	definitions []*StructDefinition
	variables   []VariableDeclaration

	defIndex map[string]int
	varIndex map[string]int
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{
		defIndex: map[string]int{},
		varIndex: map[string]int{},
	}
}

// AddDefinition registers def. Definitions without fields are ignored and
// false is returned.
func (c *Catalog) AddDefinition(def *StructDefinition) bool {
	if def == nil || len(def.Fields) == 0 {
		return false
	}
	c.definitions = append(c.definitions, def)
	if _, ok := c.defIndex[def.Name]; !ok {
		c.defIndex[def.Name] = len(c.definitions) - 1
	}
	return true
}

// AddVariable registers v. Duplicate instance names are kept.
func (c *Catalog) AddVariable(v VariableDeclaration) {
	c.variables = append(c.variables, v)
	if _, ok := c.varIndex[v.InstanceName]; !ok {
		c.varIndex[v.InstanceName] = len(c.variables) - 1
	}
}

// Definitions returns all definitions in registration order.
func (c *Catalog) Definitions() []*StructDefinition {
	return c.definitions
}

// Variables returns all variable declarations in registration order.
func (c *Catalog) Variables() []VariableDeclaration {
	return c.variables
}

// Definition returns the first definition named name.
func (c *Catalog) Definition(name string) (*StructDefinition, bool) {
	i, ok := c.defIndex[name]
	if !ok {
		return nil, false
	}
	return c.definitions[i], true
}

// Variable returns the first declaration of instance.
func (c *Catalog) Variable(instance string) (VariableDeclaration, bool) {
	i, ok := c.varIndex[instance]
	if !ok {
		return VariableDeclaration{}, false
	}
	return c.variables[i], true
}

// FieldType returns the declared type of field in the struct named
// structName.
func (c *Catalog) FieldType(structName, field string) (string, bool) {
	def, ok := c.Definition(structName)
	if !ok {
		return "", false
	}
	f, ok := def.FieldByName(field)
	if !ok {
		return "", false
	}
	return f.DeclaredType, true
}

// Merge appends every definition and variable of other to c, keeping
// order and first-wins lookups.
func (c *Catalog) Merge(other *Catalog) {
	if other == nil {
		return
	}
	for _, def := range other.definitions {
		c.AddDefinition(def)
	}
	for _, v := range other.variables {
		c.AddVariable(v)
	}
}
