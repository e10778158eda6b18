// Package descriptor pairs display names with resolved types. The position
// of a descriptor is the index of its generated accessor.
package descriptor

import (
	"strings"

	"github.com/samber/lo"

	"github.com/seitarof/gen-db/internal/catalog"
	"github.com/seitarof/gen-db/internal/resolver"
)

// Descriptor is one generated accessor.
type Descriptor struct {
	Index    int    `yaml:"index"`
	Name     string `yaml:"name"`
	TypeName string `yaml:"type"`
}

// Build zips names and types by position. Extra entries of the longer
// slice are dropped.
func Build(names, types []string) []Descriptor {
	n := min(len(names), len(types))
	out := make([]Descriptor, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Descriptor{Index: i, Name: names[i], TypeName: types[i]})
	}
	return out
}

// FromResolutions builds descriptors with names derived from each path.
func FromResolutions(res []resolver.Resolution) []Descriptor {
	names := lo.Map(res, func(r resolver.Resolution, _ int) string {
		return DisplayName(r.Path)
	})
	return Build(names, resolver.TypeNames(res))
}

// DisplayName strips the lowercase/digit prefix from every segment and
// joins the rest: stDbData.u16Voltage -> DbDataVoltage.
func DisplayName(p catalog.AccessPath) string {
	var b strings.Builder
	for _, seg := range p.Segments {
		b.WriteString(stripHungarianPrefix(seg))
	}
	return b.String()
}

func stripHungarianPrefix(s string) string {
	i := 0
	for i < len(s) && ((s[i] >= 'a' && s[i] <= 'z') || (s[i] >= '0' && s[i] <= '9')) {
		i++
	}
	return s[i:]
}

// BaseType returns the type without its array suffix: "char[10]" -> "char".
func (d Descriptor) BaseType() string {
	base, _, _ := strings.Cut(d.TypeName, "[")
	return base
}

// ArraySize returns the bracketed size of an array type, or "".
func (d Descriptor) ArraySize() string {
	_, rest, ok := strings.Cut(d.TypeName, "[")
	if !ok {
		return ""
	}
	size, _, _ := strings.Cut(rest, "]")
	return size
}

// IsArray reports whether the resolved type carries an array size.
func (d Descriptor) IsArray() bool {
	return d.ArraySize() != ""
}
