package mui

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PlainText 提取片段中可见的纯文本，连续空白折叠为一个空格
func (t *TextSegment) PlainText() string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(t.SafeMarkup))
	if err != nil {
		return strings.Join(strings.Fields(t.SafeMarkup), " ")
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// Concepts 列出片段中已链接的术语（按出现顺序）
func (t *TextSegment) Concepts() []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(t.SafeMarkup))
	if err != nil {
		return nil
	}
	var terms []string
	doc.Find("span.concept-link").Each(func(_ int, s *goquery.Selection) {
		if term, ok := s.Attr("data-concept"); ok {
			terms = append(terms, term)
		}
	})
	return terms
}
