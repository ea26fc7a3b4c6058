package mui

import (
	"html"
	"strings"

	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"
)

// Renderer 外部 Markdown 渲染器。
// 约定：符合占位符格式的子串必须原样输出，不能转义。
type Renderer interface {
	Render(src string) (string, error)
}

// RendererFunc 函数形式的 Renderer
type RendererFunc func(src string) (string, error)

// Render 实现 Renderer
func (f RendererFunc) Render(src string) (string, error) {
	return f(src)
}

// ConceptResolver 将术语映射到词汇表键
type ConceptResolver interface {
	Resolve(term string) (key string, ok bool)
}

// DefaultDiagnosticWidth 诊断信息中原始内容预览的显示宽度
const DefaultDiagnosticWidth = 200

type builderFunc func(f *Factory, tag Tag, seq *Sequence) Component

// builders 类型到构建函数的分派表
var builders = map[string]builderFunc{
	"buttons":    buildButtons,
	"checkboxes": buildCheckboxes,
	"slider":     buildSlider,
	"rating":     buildRating,
	"toggle":     buildToggle,
	"image":      buildImage,
	"video":      buildVideo,
	"date":       buildDatePicker,
	"grid":       buildGrid,
	"stat":       buildStat,
	"table":      buildTable,
	"tabs":       buildTabs,
	"accordion":  buildAccordion,
	"card":       buildCard,
}

// Factory 从 Tag 构建组件
type Factory struct {
	renderer  Renderer
	concepts  *Codec[ConceptReference]
	linker    *conceptLinker
	diagWidth int
	logger    *zap.Logger
}

// NewFactory 创建组件工厂。renderer 用于复合组件子内容的 Markdown 渲染。
func NewFactory(renderer Renderer, format MarkerFormat, resolver ConceptResolver, diagWidth int, logger *zap.Logger) *Factory {
	if logger == nil {
		logger = zap.NewNop()
	}
	if diagWidth <= 0 {
		diagWidth = DefaultDiagnosticWidth
	}
	return &Factory{
		renderer:  renderer,
		concepts:  NewConceptCodec(format),
		linker:    &conceptLinker{resolver: resolver},
		diagWidth: diagWidth,
		logger:    logger,
	}
}

// Build 构建组件。格式错误返回 Diagnostic，未知类型返回 Empty，从不 panic。
func (f *Factory) Build(tag Tag, seq *Sequence) Component {
	typ := strings.ToLower(strings.TrimSpace(tag.Type))
	build, ok := builders[typ]
	if !ok {
		f.logger.Debug("unknown mui type", zap.String("type", tag.Type))
		return &Empty{TagType: tag.Type}
	}

	c := build(f, tag, seq)
	if d, ok := c.(*Diagnostic); ok {
		f.logger.Warn("malformed mui tag",
			zap.String("type", typ),
			zap.String("message", d.Message))
	}
	return c
}

// diagnose 构造诊断组件
func (f *Factory) diagnose(tag Tag, message, expected string) *Diagnostic {
	return &Diagnostic{
		Component: tag.Type,
		Message:   message,
		Expected:  expected,
		Received:  f.preview(tag.RawContent),
	}
}

// preview 按显示宽度截断原始内容
func (f *Factory) preview(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return runewidth.Truncate(s, f.diagWidth, "...")
}

// markdownIndicators 判断子内容是否需要 Markdown 渲染的特征串
var markdownIndicators = []string{"**", "*", "#", "`", "[", "-", "1.", "!"}

// looksLikeMarkdown 只要出现任一特征串即视为 Markdown
func looksLikeMarkdown(s string) bool {
	for _, ind := range markdownIndicators {
		if strings.Contains(s, ind) {
			return true
		}
	}
	return false
}

// renderChild 渲染复合组件的单元格/标签页/折叠项内容：
// 先提取术语，按启发式决定是否走 Markdown，最后还原术语链接
func (f *Factory) renderChild(text string) string {
	ex := f.concepts.Extract(strings.TrimSpace(text))

	body := ex.Text
	if looksLikeMarkdown(body) {
		out, err := f.renderer.Render(body)
		if err != nil {
			f.logger.Warn("render child markdown failed, keep literal", zap.Error(err))
			body = html.EscapeString(body)
		} else {
			body = strings.TrimSpace(out)
		}
	} else {
		body = html.EscapeString(body)
	}

	restored, err := f.concepts.Restore(body, ex, f.linker.render)
	if err != nil {
		f.logger.Warn("concept placeholders lost in child content", zap.Error(err))
	}
	return restored
}
