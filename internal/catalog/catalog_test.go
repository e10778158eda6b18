package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStructField_ArraySize(t *testing.T) {
	f := NewStructField("char", "label", "10")
	assert.Equal(t, "char[10]", f.DeclaredType)
	assert.Equal(t, "label", f.FieldName)

	plain := NewStructField("int", "count", "")
	assert.Equal(t, "int", plain.DeclaredType)
}

func TestStructDefinition_AddFieldSkipsEmpty(t *testing.T) {
	def := &StructDefinition{Name: "Sample"}

	assert.False(t, def.AddField(StructField{FieldName: "x"}))
	assert.False(t, def.AddField(StructField{DeclaredType: "int"}))
	assert.True(t, def.AddField(NewStructField("int", "count", "")))
	require.Len(t, def.Fields, 1)

	f, ok := def.FieldByName("count")
	require.True(t, ok)
	assert.Equal(t, "int", f.DeclaredType)

	f, ok = def.FieldByType("int")
	require.True(t, ok)
	assert.Equal(t, "count", f.FieldName)

	_, ok = def.FieldByName("missing")
	assert.False(t, ok)
}

func TestCatalog_DropsEmptyDefinitions(t *testing.T) {
	c := New()

	assert.False(t, c.AddDefinition(&StructDefinition{Name: "Empty"}))
	assert.False(t, c.AddDefinition(nil))
	assert.Empty(t, c.Definitions())

	_, ok := c.Definition("Empty")
	assert.False(t, ok)
}

func TestCatalog_FirstMatchWins(t *testing.T) {
	c := New()
	c.AddDefinition(&StructDefinition{Name: "S", Fields: []StructField{{FieldName: "a", DeclaredType: "int"}}})
	c.AddDefinition(&StructDefinition{Name: "S", Fields: []StructField{{FieldName: "a", DeclaredType: "long"}}})
	c.AddVariable(VariableDeclaration{StructType: "S", InstanceName: "v"})
	c.AddVariable(VariableDeclaration{StructType: "T", InstanceName: "v"})

	require.Len(t, c.Definitions(), 2)
	require.Len(t, c.Variables(), 2)

	typ, ok := c.FieldType("S", "a")
	require.True(t, ok)
	assert.Equal(t, "int", typ)

	v, ok := c.Variable("v")
	require.True(t, ok)
	assert.Equal(t, "S", v.StructType)

	_, ok = c.FieldType("Missing", "a")
	assert.False(t, ok)
	_, ok = c.FieldType("S", "b")
	assert.False(t, ok)
}

func TestCatalog_Merge(t *testing.T) {
	a := New()
	a.AddVariable(VariableDeclaration{StructType: "A", InstanceName: "x"})
	b := New()
	b.AddDefinition(&StructDefinition{Name: "B", Fields: []StructField{{FieldName: "f", DeclaredType: "u8"}}})
	b.AddVariable(VariableDeclaration{StructType: "B", InstanceName: "x"})

	a.Merge(b)
	a.Merge(nil)

	want := []VariableDeclaration{
		{StructType: "A", InstanceName: "x"},
		{StructType: "B", InstanceName: "x"},
	}
	if diff := cmp.Diff(want, a.Variables()); diff != "" {
		t.Fatalf("variables mismatch (-want +got):\n%s", diff)
	}
	v, _ := a.Variable("x")
	assert.Equal(t, "A", v.StructType)
	_, ok := a.Definition("B")
	assert.True(t, ok)
}

func TestNewAccessPath(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want []string
		ok   bool
	}{
		{name: "single level", expr: "myStructVar.field1", want: []string{"myStructVar", "field1"}, ok: true},
		{name: "multi level", expr: "a.b.c", want: []string{"a", "b", "c"}, ok: true},
		{name: "bare instance", expr: "a", want: []string{"a"}, ok: true},
		{name: "empty segments dropped", expr: " a..b ", want: []string{"a", "b"}, ok: true},
		{name: "nothing left", expr: " . ", ok: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, ok := NewAccessPath(tc.expr)
			require.Equal(t, tc.ok, ok)
			if !ok {
				return
			}
			if diff := cmp.Diff(tc.want, p.Segments); diff != "" {
				t.Fatalf("segments mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAccessPath_Parts(t *testing.T) {
	p, ok := NewAccessPath("a.b.c")
	require.True(t, ok)
	assert.Equal(t, "a", p.Instance())
	assert.Equal(t, []string{"b", "c"}, p.Fields())
	assert.Equal(t, "a.b.c", p.String())

	single, _ := NewAccessPath("a")
	assert.Nil(t, single.Fields())
}

func TestPathSet_PreservesOrder(t *testing.T) {
	var s PathSet
	for _, expr := range []string{"z.a", "a.z", "m.m"} {
		p, _ := NewAccessPath(expr)
		s.Add(p)
	}
	var other PathSet
	p, _ := NewAccessPath("q.r")
	other.Add(p)
	s.Append(&other)
	s.Append(nil)

	require.Equal(t, 4, s.Len())
	got := make([]string, 0, s.Len())
	for _, p := range s.Paths() {
		got = append(got, p.String())
	}
	assert.Equal(t, []string{"z.a", "a.z", "m.m", "q.r"}, got)
}
