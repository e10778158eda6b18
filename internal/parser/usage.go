package parser

import (
	"strings"

	"go.uber.org/zap"

	"github.com/seitarof/gen-db/internal/catalog"
)

// statement keywords that can precede `ident =` without declaring anything.
var nonTypeKeywords = map[string]bool{
	"return": true,
	"else":   true,
	"case":   true,
	"goto":   true,
	"sizeof": true,
	"do":     true,
}

// extractVariables collects `<type> <instance> =` declarations in order.
func (p *parserImpl) extractVariables(toks []Token) []catalog.VariableDeclaration {
	var vars []catalog.VariableDeclaration
	for i := 2; i < len(toks); i++ {
		if toks[i].Kind != Assign {
			continue
		}
		typ, inst := toks[i-2], toks[i-1]
		if typ.Kind != Identifier || inst.Kind != Identifier {
			continue
		}
		if i >= 3 && (toks[i-3].Kind == Dot || toks[i-3].Content == "->") {
			continue
		}
		if nonTypeKeywords[typ.Content] {
			continue
		}
		if p.typePattern != nil && !p.typePattern.MatchString(typ.Content) {
			p.log.Debug("declaration type does not match pattern",
				zap.String("type", typ.Content),
				zap.String("instance", inst.Content))
			continue
		}
		vars = append(vars, catalog.VariableDeclaration{
			StructType:   typ.Content,
			InstanceName: inst.Content,
		})
	}
	return vars
}

// extractPaths collects `.<valueField> = <expr>,` references. The
// expression is the source text up to the next comma on the same line.
func (p *parserImpl) extractPaths(src string, toks []Token) *catalog.PathSet {
	set := &catalog.PathSet{}
	for i := 0; i+2 < len(toks); i++ {
		if toks[i].Kind != Dot || !isIdent(toks, i+1, p.valueField) || toks[i+2].Kind != Assign {
			continue
		}
		eq := toks[i+2]
		comma := -1
		for j := i + 3; j < len(toks) && toks[j].Line == eq.Line; j++ {
			if toks[j].Kind == Comma {
				comma = j
				break
			}
		}
		if comma < 0 {
			p.log.Debug("field reference without trailing comma skipped", zap.Int("line", eq.Line))
			continue
		}
		expr := normalizeReference(src[eq.End():toks[comma].Pos])
		path, ok := catalog.NewAccessPath(expr)
		if !ok {
			p.log.Debug("empty field reference skipped", zap.Int("line", eq.Line))
			continue
		}
		set.Add(path)
		i = comma
	}
	return set
}

// normalizeReference removes address-of markers and a trailing index:
// "&a.b[0]" -> "a.b".
func normalizeReference(expr string) string {
	expr = strings.TrimSpace(strings.ReplaceAll(expr, "&", ""))
	for strings.HasSuffix(expr, "]") {
		open := strings.LastIndexByte(expr, '[')
		if open < 0 {
			break
		}
		expr = strings.TrimSpace(expr[:open])
	}
	return expr
}
