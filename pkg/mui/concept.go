package mui

import (
	"html"
	"strings"
)

// conceptLinker 将术语引用渲染为可点击的 span
type conceptLinker struct {
	resolver ConceptResolver
}

// resolve 填充词汇表键
func (l *conceptLinker) resolve(c ConceptReference) ConceptReference {
	if l == nil || l.resolver == nil || c.Key != "" {
		return c
	}
	if key, ok := l.resolver.Resolve(c.Term); ok {
		c.Key = key
	}
	return c
}

func (l *conceptLinker) render(c ConceptReference) string {
	c = l.resolve(c)
	term := html.EscapeString(c.Term)

	var b strings.Builder
	b.WriteString(`<span class="concept-link" data-concept="`)
	b.WriteString(term)
	b.WriteString(`" data-value="`)
	b.WriteString(html.EscapeString(c.Value()))
	b.WriteString(`"`)
	if c.Key != "" {
		b.WriteString(` data-glossary="`)
		b.WriteString(html.EscapeString(c.Key))
		b.WriteString(`"`)
	}
	b.WriteString(`>`)
	b.WriteString(term)
	b.WriteString(`</span>`)
	return b.String()
}
