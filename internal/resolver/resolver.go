package resolver

import (
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/seitarof/gen-db/internal/catalog"
)

// UnknownType is the terminal type of a path whose instance is undeclared.
const UnknownType = "Unknown"

// Status reports how far resolution of one path got.
type Status int

const (
	StatusResolved Status = iota
	StatusPartial
	StatusUnknownInstance
)

func (s Status) String() string {
	switch s {
	case StatusResolved:
		return "resolved"
	case StatusPartial:
		return "partial"
	case StatusUnknownInstance:
		return "unknown-instance"
	default:
		return "invalid"
	}
}

// Resolution is the terminal type of one access path.
type Resolution struct {
	Path      catalog.AccessPath
	TypeName  string
	Status    Status
	Unmatched []string
}

// Resolver maps access paths to terminal types.
type Resolver interface {
	Resolve(c *catalog.Catalog, paths *catalog.PathSet) []Resolution
}

type resolverImpl struct {
	log *zap.Logger
}

// New builds a resolver. A nil logger discards diagnostics.
func New(log *zap.Logger) Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &resolverImpl{log: log}
}

// Resolve returns one resolution per path, in path order.
func (r *resolverImpl) Resolve(c *catalog.Catalog, paths *catalog.PathSet) []Resolution {
	if paths == nil {
		return nil
	}
	out := make([]Resolution, 0, paths.Len())
	for _, p := range paths.Paths() {
		res := resolveOne(c, p)
		if res.Status != StatusResolved {
			r.log.Warn("access path not fully resolved",
				zap.String("path", p.String()),
				zap.Stringer("status", res.Status),
				zap.String("type", res.TypeName),
				zap.Strings("unmatched", res.Unmatched))
		}
		out = append(out, res)
	}
	return out
}

// resolveOne steps from the instance's struct into each named field. A
// segment that matches nothing leaves the current type as it was.
func resolveOne(c *catalog.Catalog, p catalog.AccessPath) Resolution {
	res := Resolution{Path: p, TypeName: UnknownType, Status: StatusResolved}
	if c == nil {
		c = catalog.New()
	}

	if v, ok := c.Variable(p.Instance()); ok {
		res.TypeName = v.StructType
	} else {
		res.Status = StatusUnknownInstance
	}

	for _, seg := range p.Fields() {
		typ, ok := c.FieldType(res.TypeName, seg)
		if !ok {
			res.Unmatched = append(res.Unmatched, seg)
			if res.Status == StatusResolved {
				res.Status = StatusPartial
			}
			continue
		}
		res.TypeName = typ
	}
	return res
}

// TypeNames returns the terminal types in resolution order.
func TypeNames(res []Resolution) []string {
	return lo.Map(res, func(r Resolution, _ int) string {
		return r.TypeName
	})
}
