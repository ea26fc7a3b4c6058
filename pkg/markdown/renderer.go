package markdown

import (
	"bytes"
	"fmt"
	stdhtml "html"
	"strings"

	mathjax "github.com/litao91/goldmark-mathjax"
	"github.com/nerdneilsfield/go-promptpane/pkg/mui"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
)

// Options Markdown 渲染选项
type Options struct {
	// Typographer 智能引号、破折号
	Typographer bool
	// HardWraps 单个换行输出 <br>
	HardWraps bool
	// UnsafeHTML 原样输出消息中的 HTML
	UnsafeHTML bool
}

// Renderer 基于 goldmark 的 Markdown 渲染器。
// 没有启用 Linkify：自动链接会把紧邻 URL 的占位符吞进 href。
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer 创建渲染器
func NewRenderer(opts Options) *Renderer {
	exts := []goldmark.Extender{
		extension.Table,          // 表格
		extension.Strikethrough,  // 删除线
		extension.TaskList,       // 任务列表
		extension.DefinitionList, // 定义列表
		extension.Footnote,       // 脚注
	}
	if opts.Typographer {
		exts = append(exts, extension.Typographer)
	}

	var rendererOpts []goldmark.Option
	var htmlOpts []renderer.Option
	if opts.HardWraps {
		htmlOpts = append(htmlOpts, html.WithHardWraps())
	}
	if opts.UnsafeHTML {
		htmlOpts = append(htmlOpts, html.WithUnsafe())
	}
	if len(htmlOpts) > 0 {
		rendererOpts = append(rendererOpts, goldmark.WithRendererOptions(htmlOpts...))
	}

	return &Renderer{
		md: goldmark.New(append(rendererOpts, goldmark.WithExtensions(exts...))...),
	}
}

// Render 实现 mui.Renderer
func (r *Renderer) Render(src string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("goldmark convert: %w", err)
	}
	return buf.String(), nil
}

// MathJaxRenderer 用 goldmark-mathjax 把公式还原为 MathJax 标记
type MathJaxRenderer struct {
	md goldmark.Markdown
}

// NewMathJaxRenderer 创建公式渲染器
func NewMathJaxRenderer() *MathJaxRenderer {
	return &MathJaxRenderer{
		md: goldmark.New(goldmark.WithExtensions(mathjax.MathJax)),
	}
}

// RenderMath 实现 mui.MathRenderer，失败时退回转义后的原文
func (r *MathJaxRenderer) RenderMath(b mui.MathBlock) string {
	src := dollarForm(b)
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return stdhtml.EscapeString(b.Raw)
	}

	out := strings.TrimSpace(buf.String())
	if strings.HasPrefix(out, "<p>") && strings.HasSuffix(out, "</p>") {
		out = strings.TrimSpace(out[len("<p>") : len(out)-len("</p>")])
	}
	if out == "" {
		return stdhtml.EscapeString(b.Raw)
	}
	return out
}

// dollarForm 统一为 goldmark-mathjax 识别的 $ / $$ 定界符
func dollarForm(b mui.MathBlock) string {
	raw := b.Raw
	switch {
	case strings.HasPrefix(raw, `\[`) && strings.HasSuffix(raw, `\]`):
		return "$$\n" + strings.TrimSpace(raw[2:len(raw)-2]) + "\n$$"
	case strings.HasPrefix(raw, "$$") && strings.HasSuffix(raw, "$$") && len(raw) >= 4:
		return "$$\n" + strings.TrimSpace(raw[2:len(raw)-2]) + "\n$$"
	case strings.HasPrefix(raw, `\(`) && strings.HasSuffix(raw, `\)`):
		return "$" + strings.TrimSpace(raw[2:len(raw)-2]) + "$"
	}
	return raw
}
