// Package pretty indents XML documents for humans without touching CDATA content.
package pretty

import "strings"

const indent = "  "

type tokenKind int

const (
	openTag tokenKind = iota
	closeTag
	selfClosingTag
	otherTag // declarations, comments, processing instructions
	text
	cdataSection
)

type token struct {
	kind  tokenKind
	value string
}

// XML returns doc with one element per line, indented by two spaces per level.
// Elements holding only text or CDATA stay on a single line. Whitespace-only
// text between tags is dropped; CDATA sections are copied verbatim.
func XML(doc string) string {
	tokens := tokenize(doc)

	var b strings.Builder
	depth := 0
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		switch tok.kind {
		case openTag:
			if end, ok := inlineEnd(tokens, i); ok {
				writeLine(&b, depth, joinTokens(tokens[i:end+1]))
				i = end
				continue
			}
			writeLine(&b, depth, tok.value)
			depth++
		case closeTag:
			if depth > 0 {
				depth--
			}
			writeLine(&b, depth, tok.value)
		case text:
			if trimmed := strings.TrimSpace(tok.value); trimmed != "" {
				writeLine(&b, depth, trimmed)
			}
		default:
			writeLine(&b, depth, tok.value)
		}
	}

	return strings.TrimSuffix(b.String(), "\n")
}

// inlineEnd reports the index of the close tag when the element opened at
// tokens[start] holds nothing but text and CDATA.
func inlineEnd(tokens []token, start int) (int, bool) {
	for j := start + 1; j < len(tokens); j++ {
		switch tokens[j].kind {
		case text, cdataSection:
			continue
		case closeTag:
			return j, true
		default:
			return 0, false
		}
	}
	return 0, false
}

func joinTokens(tokens []token) string {
	var b strings.Builder
	for _, tok := range tokens {
		b.WriteString(tok.value)
	}
	return b.String()
}

func writeLine(b *strings.Builder, depth int, s string) {
	b.WriteString(strings.Repeat(indent, depth))
	b.WriteString(s)
	b.WriteByte('\n')
}

func tokenize(doc string) []token {
	var tokens []token
	for len(doc) > 0 {
		switch {
		case strings.HasPrefix(doc, "<![CDATA["):
			end := strings.Index(doc, "]]>")
			if end < 0 {
				return append(tokens, token{kind: cdataSection, value: doc})
			}
			tokens = append(tokens, token{kind: cdataSection, value: doc[:end+3]})
			doc = doc[end+3:]
		case strings.HasPrefix(doc, "<!--"):
			end := strings.Index(doc, "-->")
			if end < 0 {
				return append(tokens, token{kind: otherTag, value: doc})
			}
			tokens = append(tokens, token{kind: otherTag, value: doc[:end+3]})
			doc = doc[end+3:]
		case doc[0] == '<':
			end := tagEnd(doc)
			if end < 0 {
				return append(tokens, token{kind: text, value: doc})
			}
			tag := doc[:end+1]
			tokens = append(tokens, token{kind: classify(tag), value: tag})
			doc = doc[end+1:]
		default:
			end := strings.IndexByte(doc, '<')
			if end < 0 {
				end = len(doc)
			}
			tokens = append(tokens, token{kind: text, value: doc[:end]})
			doc = doc[end:]
		}
	}
	return tokens
}

// tagEnd finds the closing '>' of the tag at the start of doc, skipping
// quoted attribute values.
func tagEnd(doc string) int {
	var quote byte
	for i := 1; i < len(doc); i++ {
		c := doc[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '>':
			return i
		}
	}
	return -1
}

func classify(tag string) tokenKind {
	switch {
	case strings.HasPrefix(tag, "</"):
		return closeTag
	case strings.HasPrefix(tag, "<?"), strings.HasPrefix(tag, "<!"):
		return otherTag
	case strings.HasSuffix(tag, "/>"):
		return selfClosingTag
	default:
		return openTag
	}
}
