package mui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MarkerFormat 占位符格式：Prefix + KIND + "_" + 序号 + Suffix
type MarkerFormat struct {
	Prefix string
	Suffix string
}

// DefaultMarkerFormat 默认格式，例如 @@MATH_0@@。
// 这些字符不会被 Markdown 渲染器转义或解释。
var DefaultMarkerFormat = MarkerFormat{
	Prefix: "@@",
	Suffix: "@@",
}

// Marker 生成第 index 个占位符
func (f MarkerFormat) Marker(kind Kind, index int) string {
	return f.Prefix + string(kind) + "_" + strconv.Itoa(index) + f.Suffix
}

// Match 匹配器找到的一处内容
type Match[T any] struct {
	Start   int
	End     int
	Payload T
}

// Matcher 按从左到右的顺序返回互不重叠的匹配
type Matcher[T any] interface {
	FindAll(text string) []Match[T]
}

// MatcherFunc 函数形式的 Matcher
type MatcherFunc[T any] func(text string) []Match[T]

// FindAll 实现 Matcher
func (f MatcherFunc[T]) FindAll(text string) []Match[T] {
	return f(text)
}

// Extraction 一次提取的结果
type Extraction[T any] struct {
	// Text 替换为占位符之后的文本
	Text string
	// Payloads 第 i 个元素对应第 i 个占位符
	Payloads []T
	// Sources 每个占位符替换掉的原文
	Sources []string
}

// Len 占位符数量
func (e *Extraction[T]) Len() int {
	return len(e.Payloads)
}

// Codec 可逆的占位符编解码器
type Codec[T any] struct {
	kind    Kind
	matcher Matcher[T]
	format  MarkerFormat
}

// NewCodec 创建编解码器
func NewCodec[T any](kind Kind, matcher Matcher[T], format MarkerFormat) *Codec[T] {
	return &Codec[T]{kind: kind, matcher: matcher, format: format}
}

// Kind 占位符类型
func (c *Codec[T]) Kind() Kind {
	return c.kind
}

// Marker 第 index 个占位符文本
func (c *Codec[T]) Marker(index int) string {
	return c.format.Marker(c.kind, index)
}

// Extract 将每个匹配替换为占位符，按顺序记录载荷
func (c *Codec[T]) Extract(text string) *Extraction[T] {
	ex := &Extraction[T]{Text: text}
	matches := c.matcher.FindAll(text)
	if len(matches) == 0 {
		return ex
	}

	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for _, m := range matches {
		if m.Start < last || m.End < m.Start || m.End > len(text) {
			continue
		}
		b.WriteString(text[last:m.Start])
		b.WriteString(c.Marker(len(ex.Payloads)))
		ex.Payloads = append(ex.Payloads, m.Payload)
		ex.Sources = append(ex.Sources, text[m.Start:m.End])
		last = m.End
	}
	b.WriteString(text[last:])
	ex.Text = b.String()
	return ex
}

// Restore 把占位符替换为 render 的结果；render 为 nil 时还原原文。
// 替换一次完成，载荷中出现的类似占位符的文本不会被再次替换。
// 占位符缺失或重复时返回 *PlaceholderMismatchError，但仍返回尽力还原的文本。
func (c *Codec[T]) Restore(text string, ex *Extraction[T], render func(T) string) (string, error) {
	if ex == nil || len(ex.Payloads) == 0 {
		return text, nil
	}

	var errs []error
	pairs := make([]string, 0, 2*len(ex.Payloads))
	for i, p := range ex.Payloads {
		marker := c.Marker(i)
		if n := strings.Count(text, marker); n != 1 {
			errs = append(errs, &PlaceholderMismatchError{Kind: c.kind, Index: i, Count: n})
		}
		replacement := ex.Sources[i]
		if render != nil {
			replacement = render(p)
		}
		pairs = append(pairs, marker, replacement)
	}

	return strings.NewReplacer(pairs...).Replace(text), errors.Join(errs...)
}

// PlaceholderMismatchError 占位符数量与提取结果不一致
type PlaceholderMismatchError struct {
	Kind  Kind
	Index int
	// Count 在文本中找到的次数
	Count int
}

func (e *PlaceholderMismatchError) Error() string {
	return fmt.Sprintf("placeholder %s_%d found %d times, expected exactly once", e.Kind, e.Index, e.Count)
}
