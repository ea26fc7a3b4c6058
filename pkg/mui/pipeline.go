package mui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// ErrRendererFailed Markdown 渲染器返回错误
var ErrRendererFailed = errors.New("markdown renderer failed")

// MathRenderer 决定公式还原后的形式
type MathRenderer interface {
	RenderMath(b MathBlock) string
}

// MathRendererFunc 函数形式的 MathRenderer
type MathRendererFunc func(b MathBlock) string

// RenderMath 实现 MathRenderer
func (f MathRendererFunc) RenderMath(b MathBlock) string {
	return f(b)
}

// RawMath 还原公式原文（仅做 HTML 转义），交给前端 KaTeX 处理
var RawMath MathRenderer = MathRendererFunc(func(b MathBlock) string { return html.EscapeString(b.Raw) })

// Pipeline 提取、保护、渲染并重组一条消息。
// 构造后只读，可以被多个 goroutine 同时调用 Process。
type Pipeline struct {
	renderer  Renderer
	math      MathRenderer
	resolver  ConceptResolver
	format    MarkerFormat
	strict    bool
	diagWidth int
	logger    *zap.Logger

	factory    *Factory
	components *Codec[Tag]
	concepts   *Codec[ConceptReference]
	maths      *Codec[MathBlock]
	linker     *conceptLinker
}

// PipelineOption Pipeline 配置项
type PipelineOption func(*Pipeline)

// WithLogger 设置日志
func WithLogger(logger *zap.Logger) PipelineOption {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithStrict 占位符不一致时返回错误而不是降级
func WithStrict(strict bool) PipelineOption {
	return func(p *Pipeline) { p.strict = strict }
}

// WithMarkerFormat 自定义占位符格式
func WithMarkerFormat(format MarkerFormat) PipelineOption {
	return func(p *Pipeline) { p.format = format }
}

// WithMathRenderer 设置公式还原方式
func WithMathRenderer(m MathRenderer) PipelineOption {
	return func(p *Pipeline) {
		if m != nil {
			p.math = m
		}
	}
}

// WithConceptResolver 设置词汇表
func WithConceptResolver(r ConceptResolver) PipelineOption {
	return func(p *Pipeline) { p.resolver = r }
}

// WithDiagnosticWidth 诊断信息中原始内容的最大显示宽度
func WithDiagnosticWidth(width int) PipelineOption {
	return func(p *Pipeline) { p.diagWidth = width }
}

// NewPipeline 创建处理管线
func NewPipeline(renderer Renderer, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		renderer:  renderer,
		math:      RawMath,
		format:    DefaultMarkerFormat,
		diagWidth: DefaultDiagnosticWidth,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}

	p.factory = NewFactory(renderer, p.format, p.resolver, p.diagWidth, p.logger)
	p.components = NewComponentCodec(p.format)
	p.concepts = NewConceptCodec(p.format)
	p.maths = NewMathCodec(p.format)
	p.linker = &conceptLinker{resolver: p.resolver}
	return p
}

// Process 处理一条助手消息。顺序固定：
// 组件提取 → 术语提取 → 公式提取 → Markdown 渲染 → 公式还原 → 术语还原 → 组件拼接。
func (p *Pipeline) Process(text string) ([]OutputItem, error) {
	log := p.logger.With(zap.String("request_id", uuid.NewString()))
	seq := &Sequence{}

	tags := p.components.Extract(text)
	components := make([]Component, len(tags.Payloads))
	for i, tag := range tags.Payloads {
		components[i] = p.factory.Build(tag, seq)
	}

	concepts := p.concepts.Extract(tags.Text)
	maths := p.maths.Extract(concepts.Text)
	log.Debug("placeholders extracted",
		zap.Int("components", tags.Len()),
		zap.Int("concepts", concepts.Len()),
		zap.Int("math", maths.Len()))

	rendered, err := p.renderer.Render(maths.Text)
	if err != nil {
		log.Error("render markdown failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrRendererFailed, err)
	}

	rendered, err = p.maths.Restore(rendered, maths, p.math.RenderMath)
	if err = p.check(log, err); err != nil {
		return nil, err
	}

	rendered, err = p.concepts.Restore(rendered, concepts, p.linker.render)
	if err = p.check(log, err); err != nil {
		return nil, err
	}

	items, err := p.interleave(rendered, components)
	if err = p.check(log, err); err != nil {
		return nil, err
	}
	return items, nil
}

// check 严格模式下返回错误；否则记录警告，保留未能还原的占位符
func (p *Pipeline) check(log *zap.Logger, err error) error {
	if err == nil {
		return nil
	}
	if p.strict {
		return err
	}
	log.Warn("placeholder mismatch, output degraded", zap.Error(err))
	return nil
}

// interleave 按序号依次在占位符处切分，文本段与组件交替输出
func (p *Pipeline) interleave(rendered string, components []Component) ([]OutputItem, error) {
	if len(components) == 0 {
		return []OutputItem{&TextSegment{SafeMarkup: rendered}}, nil
	}

	// 单独成段的组件不保留空的 <p></p> 外壳
	remaining := rendered
	for i := range components {
		marker := p.components.Marker(i)
		remaining = strings.Replace(remaining, "<p>"+marker+"</p>", marker, 1)
	}

	var errs []error
	items := make([]OutputItem, 0, 2*len(components)+1)
	for i, c := range components {
		marker := p.components.Marker(i)
		if n := strings.Count(remaining, marker); n != 1 {
			errs = append(errs, &PlaceholderMismatchError{Kind: KindComponent, Index: i, Count: n})
		}
		before, after, found := strings.Cut(remaining, marker)
		if !found {
			continue
		}
		if strings.TrimSpace(before) != "" {
			items = append(items, &TextSegment{SafeMarkup: before})
		}
		items = append(items, c)
		remaining = after
	}

	if strings.TrimSpace(remaining) != "" {
		items = append(items, &TextSegment{SafeMarkup: remaining})
	}
	if len(items) == 0 {
		items = append(items, &TextSegment{SafeMarkup: rendered})
	}
	return items, errors.Join(errs...)
}

// Components 从输出序列中取出组件
func Components(items []OutputItem) []Component {
	var out []Component
	for _, it := range items {
		if c, ok := it.(Component); ok {
			out = append(out, c)
		}
	}
	return out
}
