package catalog

import "strings"

// AccessPath is one dotted field reference, e.g. [stData u16Voltage].
type AccessPath struct {
	Segments []string
	Raw      string
}

// NewAccessPath splits expr on '.' and drops empty segments. ok is false
// when nothing is left.
func NewAccessPath(expr string) (AccessPath, bool) {
	parts := strings.Split(expr, ".")
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		segments = append(segments, p)
	}
	if len(segments) == 0 {
		return AccessPath{}, false
	}
	return AccessPath{Segments: segments, Raw: expr}, true
}

// Instance returns the leading segment.
func (p AccessPath) Instance() string {
	if len(p.Segments) == 0 {
		return ""
	}
	return p.Segments[0]
}

// Fields returns the segments after the instance name.
func (p AccessPath) Fields() []string {
	if len(p.Segments) < 2 {
		return nil
	}
	return p.Segments[1:]
}

func (p AccessPath) String() string {
	return strings.Join(p.Segments, ".")
}

// PathSet keeps access paths in order of appearance. The order is the
// index order of the generated accessors.
type PathSet struct {
	paths []AccessPath
}

// Add appends p.
func (s *PathSet) Add(p AccessPath) {
	s.paths = append(s.paths, p)
}

// Append appends every path of other.
func (s *PathSet) Append(other *PathSet) {
	if other == nil {
		return
	}
	s.paths = append(s.paths, other.paths...)
}

// Paths returns the paths in order.
func (s *PathSet) Paths() []AccessPath {
	return s.paths
}

// Len returns the number of paths.
func (s *PathSet) Len() int {
	return len(s.paths)
}
