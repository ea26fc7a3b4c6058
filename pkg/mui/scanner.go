package mui

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

const (
	reservedElement = "mui"
	optionElement   = "option"
	defaultTagType  = "buttons"
)

var (
	// markupToken 只识别 <mui>、<option> 及其结束标签和注释，正文中的其他尖括号一律当作文本
	markupToken = regexp.MustCompile(`(?i)<!--[\s\S]*?-->|<(/?)(mui|option)((?:[\s/](?:[^>"']|"[^"]*"|'[^']*')*)?)>`)

	// labelTag 选项标签内的行内标记
	labelTag = regexp.MustCompile(`</?[A-Za-z][^<>]*>`)
)

// ScanTags 扫描文本中所有顶层 <mui> 元素。
// 文本本身不做修改，替换为占位符由组件编解码器负责。
func ScanTags(text string) []Tag {
	s := &tagScanner{}
	pos := 0

	for _, m := range markupToken.FindAllStringSubmatchIndex(text, -1) {
		s.text(text[pos:m[0]])
		pos = m[1]

		raw := text[m[0]:m[1]]
		if m[4] < 0 {
			// 注释
			continue
		}
		name := strings.ToLower(text[m[4]:m[5]])
		if m[3] > m[2] {
			s.end(name, raw, m[1])
			continue
		}
		attrs, selfClosing := parseStartTag(raw)
		s.start(name, attrs, raw, m[0], m[1], selfClosing)
	}
	// 未闭合的 <mui> 直接丢弃

	return s.tags
}

// parseStartTag 用 HTML 分词器解析单个起始标签的属性（键名小写，值做实体解码）
func parseStartTag(raw string) (map[string]string, bool) {
	z := html.NewTokenizer(strings.NewReader(raw))
	tt := z.Next()
	if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
		return map[string]string{}, false
	}
	_, hasAttr := z.TagName()
	return readAttrs(z, hasAttr), tt == html.SelfClosingTagToken
}

// tagScanner 深度跟踪的扫描状态
type tagScanner struct {
	tags     []Tag
	current  *Tag
	raw      strings.Builder
	label    strings.Builder
	depth    int
	inOption bool
}

func (s *tagScanner) start(name string, attrs map[string]string, raw string, start, end int, selfClosing bool) {
	if s.current == nil {
		if name != reservedElement {
			return
		}
		typ, ok := attrs["type"]
		if !ok {
			typ = defaultTagType
		}
		s.current = &Tag{Type: typ, Attrs: attrs, Start: start}
		s.raw.Reset()
		s.depth = 1
		s.inOption = false
		if selfClosing {
			s.finish(end)
		}
		return
	}

	switch {
	case name == reservedElement:
		s.closeOption()
		// 语法上不应出现嵌套，但状态机不能因此提前闭合
		if !selfClosing {
			s.depth++
		}
		s.raw.WriteString(raw)
	case s.depth > 1:
		s.raw.WriteString(raw)
	default:
		s.closeOption()
		s.current.Options = append(s.current.Options, Option{Value: attrs["value"]})
		s.inOption = !selfClosing
	}
}

func (s *tagScanner) end(name, raw string, end int) {
	if s.current == nil {
		return
	}

	switch {
	case name == reservedElement:
		s.closeOption()
		s.depth--
		if s.depth == 0 {
			s.finish(end)
			return
		}
		s.raw.WriteString(raw)
	case s.depth > 1:
		s.raw.WriteString(raw)
	default:
		s.closeOption()
	}
}

// text 选项内的文本累积为标签，其余原样进入 RawContent（保留实体转义）
func (s *tagScanner) text(raw string) {
	if s.current == nil || raw == "" {
		return
	}
	if s.inOption {
		s.label.WriteString(raw)
		return
	}
	s.raw.WriteString(raw)
}

// closeOption 结束当前选项：去掉行内标记、解码实体后作为标签
func (s *tagScanner) closeOption() {
	if !s.inOption {
		return
	}
	label := labelTag.ReplaceAllString(s.label.String(), "")
	last := &s.current.Options[len(s.current.Options)-1]
	last.Label = strings.TrimSpace(html.UnescapeString(label))
	s.label.Reset()
	s.inOption = false
}

func (s *tagScanner) finish(end int) {
	s.current.RawContent = s.raw.String()
	s.current.End = end
	s.tags = append(s.tags, *s.current)
	s.current = nil
	s.raw.Reset()
	s.label.Reset()
	s.depth = 0
	s.inOption = false
}

func readAttrs(z *html.Tokenizer, hasAttr bool) map[string]string {
	attrs := make(map[string]string)
	for hasAttr {
		var key, val []byte
		key, val, hasAttr = z.TagAttr()
		attrs[string(key)] = string(val)
	}
	return attrs
}
