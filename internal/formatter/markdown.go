package formatter

import (
	"errors"
	"strings"

	"github.com/Kunde21/markdownfmt/v3"
	"github.com/Kunde21/markdownfmt/v3/markdown"
	"github.com/nerdneilsfield/go-promptpane/pkg/mui"
	"go.uber.org/zap"
)

// MarkdownFormatter 规范化助手消息的 Markdown 源码。
// <mui> 标签、<concept> 和公式在 markdownfmt 处理期间被占位符保护，处理后原样还原。
type MarkdownFormatter struct {
	name       string
	components *mui.Codec[mui.Tag]
	concepts   *mui.Codec[mui.ConceptReference]
	maths      *mui.Codec[mui.MathBlock]
	logger     *zap.Logger
}

// NewMarkdownFormatter 创建 Markdown 格式化器
func NewMarkdownFormatter(format mui.MarkerFormat, logger *zap.Logger) *MarkdownFormatter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MarkdownFormatter{
		name:       "markdown-formatter",
		components: mui.NewComponentCodec(format),
		concepts:   mui.NewConceptCodec(format),
		maths:      mui.NewMathCodec(format),
		logger:     logger,
	}
}

// Name 返回格式化器名称
func (f *MarkdownFormatter) Name() string {
	return f.name
}

// Format 实现 Formatter 接口。
// 任何占位符没能原样穿过 markdownfmt 时，返回解码后的原文和 *FormatError。
func (f *MarkdownFormatter) Format(content []byte) ([]byte, error) {
	text := DecodeText(content)

	// 保护特定内容块，顺序与渲染管线一致
	tags := f.components.Extract(text)
	concepts := f.concepts.Extract(tags.Text)
	maths := f.maths.Extract(concepts.Text)
	f.logger.Debug("protected blocks",
		zap.Int("components", tags.Len()),
		zap.Int("concepts", concepts.Len()),
		zap.Int("math", maths.Len()))

	formatted, err := markdownfmt.Process("", []byte(maths.Text),
		markdown.WithCodeFormatters(markdown.GoCodeFormatter))
	if err != nil {
		return []byte(text), &FormatError{
			Formatter: f.name,
			Reason:    "markdown formatting failed",
			Err:       err,
		}
	}

	// 恢复保护的内容，与提取顺序相反
	result, mathErr := f.maths.Restore(string(formatted), maths, nil)
	result, conceptErr := f.concepts.Restore(result, concepts, nil)
	result, tagErr := f.components.Restore(result, tags, nil)
	if err := errors.Join(mathErr, conceptErr, tagErr); err != nil {
		f.logger.Warn("markdownfmt altered placeholders, keeping source", zap.Error(err))
		return []byte(text), &FormatError{
			Formatter: f.name,
			Reason:    "protected blocks could not be restored",
			Err:       err,
		}
	}

	if !strings.HasSuffix(result, "\n") {
		result += "\n"
	}
	return []byte(result), nil
}
