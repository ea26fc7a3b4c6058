package mui

import (
	"strconv"
	"strings"
)

// Option <option> 子元素
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// DisplayLabel 返回显示文本，标签为空时使用 value
func (o Option) DisplayLabel() string {
	if o.Label != "" {
		return o.Label
	}
	return o.Value
}

// Tag 一个顶层 <mui> 元素的扫描结果
type Tag struct {
	// Type 组件类型，缺省为 buttons
	Type string

	// Attrs 全部属性（包括未知属性）
	Attrs map[string]string

	// Options 按出现顺序排列的 <option>
	Options []Option

	// RawContent 原样捕获的子标记，复合组件据此做二次解析
	RawContent string

	// Start/End 整个元素在源文本中的字节区间 [Start, End)
	Start int
	End   int
}

// Attr 获取属性值，不存在时返回默认值
func (t Tag) Attr(name, def string) string {
	if v, ok := t.Attrs[name]; ok {
		return v
	}
	return def
}

// HasAttr 属性是否存在且非空
func (t Tag) HasAttr(name string) bool {
	return strings.TrimSpace(t.Attrs[name]) != ""
}

// IntAttr 解析整数属性，属性缺失时返回默认值
func (t Tag) IntAttr(name string, def int) (int, error) {
	v, ok := t.Attrs[name]
	if !ok {
		return def, nil
	}
	return strconv.Atoi(strings.TrimSpace(v))
}

// Kind 占位符类型
type Kind string

const (
	KindMath      Kind = "MATH"
	KindConcept   Kind = "CONCEPT"
	KindComponent Kind = "MUI"
)

// Placeholder 文本中的占位标记
type Placeholder struct {
	Index int
	Kind  Kind
}

// MathStyle 公式排版方式
type MathStyle string

const (
	MathInline  MathStyle = "inline"
	MathDisplay MathStyle = "display"
)

// MathBlock 原样保留的公式
type MathBlock struct {
	Style MathStyle `json:"style"`
	Raw   string    `json:"raw"`
}

// ConceptReference <concept> 术语引用
type ConceptReference struct {
	Term string `json:"term"`
	// Key 词汇表中的键，未命中时为空
	Key string `json:"key,omitempty"`
}

// Value 激活值：点击术语等同于用户输入该术语
func (c ConceptReference) Value() string {
	return c.Term
}

// OutputItem 输出序列中的一项：TextSegment 或 Component
type OutputItem interface {
	isOutputItem()
}

// TextSegment 已渲染的安全 HTML 片段
type TextSegment struct {
	SafeMarkup string `json:"safe_markup"`
}

func (*TextSegment) isOutputItem() {}

// Sequence 单次调用内的元素 ID 生成器
type Sequence struct {
	n int
}

// Next 生成形如 slider-1 的 ID
func (s *Sequence) Next(prefix string) string {
	s.n++
	return prefix + "-" + strconv.Itoa(s.n)
}
