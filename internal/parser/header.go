package parser

import (
	"strings"

	"go.uber.org/zap"

	"github.com/seitarof/gen-db/internal/catalog"
)

// extractDefinitions walks every `typedef struct [tag] { ... } Name;` block.
// Definitions are returned even when empty; the catalog drops those.
func (p *parserImpl) extractDefinitions(toks []Token) []*catalog.StructDefinition {
	var defs []*catalog.StructDefinition
	for i := 0; i < len(toks); i++ {
		if !isIdent(toks, i, "typedef") || !isIdent(toks, i+1, "struct") {
			continue
		}
		j := i + 2
		if j < len(toks) && toks[j].Kind == Identifier {
			j++ // tag
		}
		if j >= len(toks) || toks[j].Kind != LeftCurlyBracket {
			continue
		}
		end := matchingBrace(toks, j)
		if end < 0 {
			p.log.Debug("unterminated struct body", zap.Int("offset", toks[j].Pos))
			return defs
		}
		if end+2 >= len(toks) || toks[end+1].Kind != Identifier || toks[end+2].Kind != Semicolon {
			i = end
			continue
		}
		def := &catalog.StructDefinition{Name: toks[end+1].Content}
		p.extractFields(def, toks[j+1:end])
		defs = append(defs, def)
		i = end + 2
	}
	return defs
}

// extractFields splits a struct body into member declarations.
func (p *parserImpl) extractFields(def *catalog.StructDefinition, body []Token) {
	start := 0
	for i := 0; i < len(body); i++ {
		switch body[i].Kind {
		case LeftCurlyBracket:
			// nested aggregate: drop the whole member
			end := matchingBrace(body, i)
			if end < 0 {
				return
			}
			for end < len(body) && body[end].Kind != Semicolon {
				end++
			}
			p.log.Debug("nested aggregate member skipped", zap.String("struct", def.Name))
			i = end
			start = end + 1
		case Semicolon:
			decl := body[start:i]
			start = i + 1
			if len(decl) == 0 {
				continue
			}
			f, ok := parseMember(decl)
			if !ok || !def.AddField(f) {
				p.log.Debug("member declaration skipped",
					zap.String("struct", def.Name),
					zap.String("decl", joinTokens(decl)))
			}
		}
	}
}

// parseMember reads `<type> <name>[<size>]`. The type is the last type
// token before the name, qualifiers are dropped and pointer stars kept.
func parseMember(decl []Token) (catalog.StructField, bool) {
	size := ""
	if n := len(decl); n > 0 && decl[n-1].Kind == RightSquareBracket {
		if n < 4 || decl[n-3].Kind != LeftSquareBracket {
			return catalog.StructField{}, false
		}
		if k := decl[n-2].Kind; k != Number && k != Identifier {
			return catalog.StructField{}, false
		}
		size = decl[n-2].Content
		decl = decl[:n-3]
	}

	n := len(decl)
	if n < 2 || decl[n-1].Kind != Identifier {
		return catalog.StructField{}, false
	}
	name := decl[n-1].Content

	stars := 0
	i := n - 2
	for i >= 0 && decl[i].Kind == Star {
		stars++
		i--
	}
	if i < 0 || decl[i].Kind != Identifier {
		return catalog.StructField{}, false
	}
	for _, tok := range decl[:i] {
		if tok.Kind != Identifier && tok.Kind != Star {
			return catalog.StructField{}, false
		}
	}

	typ := decl[i].Content + strings.Repeat("*", stars)
	return catalog.NewStructField(typ, name, size), true
}

func matchingBrace(toks []Token, open int) int {
	depth := 0
	for i := open; i < len(toks); i++ {
		switch toks[i].Kind {
		case LeftCurlyBracket:
			depth++
		case RightCurlyBracket:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func isIdent(toks []Token, i int, content string) bool {
	return i < len(toks) && toks[i].Kind == Identifier && toks[i].Content == content
}

func joinTokens(toks []Token) string {
	parts := make([]string, 0, len(toks))
	for _, tok := range toks {
		parts = append(parts, tok.Content)
	}
	return strings.Join(parts, " ")
}
