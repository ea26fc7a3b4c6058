package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/nerdneilsfield/go-promptpane/internal/config"
	"github.com/nerdneilsfield/go-promptpane/internal/formatter"
	"github.com/nerdneilsfield/go-promptpane/internal/glossary"
	"github.com/nerdneilsfield/go-promptpane/internal/logger"
	"github.com/nerdneilsfield/go-promptpane/internal/transcript"
	"github.com/nerdneilsfield/go-promptpane/pkg/markdown"
	"github.com/nerdneilsfield/go-promptpane/pkg/mui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// 命令行标志变量
	cfgFile   string
	debugMode bool
	strict    bool
	mathMode  string
)

// NewRootCommand 创建根命令
func NewRootCommand(version, commit, buildDate string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "promptpane",
		Short: "把带 <mui> 组件标签的助手消息渲染为文本段和组件",
		Long: `promptpane 处理学习助手的回复消息：提取 <mui> 交互组件、<concept> 术语引用和 TeX 公式，
用占位符保护它们穿过 Markdown 渲染器，再重组为有序的 HTML 文本段和组件列表。

消息文件可以带 YAML 头信息（title、session）。文件参数为 "-" 或省略时读取标准输入。`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, buildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "配置文件路径（默认 $HOME/.promptpane.yaml）")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "启用调试日志")
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false, "占位符不一致时报错")
	rootCmd.PersistentFlags().StringVar(&mathMode, "math", "", "公式还原方式 (raw, mathjax)")

	rootCmd.AddCommand(NewRenderCommand())
	rootCmd.AddCommand(NewInspectCommand())
	rootCmd.AddCommand(NewFormatCommand())

	return rootCmd
}

// runtime 一次命令执行所需的配置和日志
type runtime struct {
	cfg *config.Config
	log *zap.Logger
}

// loadRuntime 加载配置，命令行标志覆盖配置文件
func loadRuntime(cmd *cobra.Command) (*runtime, error) {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("debug") {
		cfg.Debug = debugMode
	}
	if cmd.Flags().Changed("strict") {
		cfg.StrictPlaceholders = strict
	}
	if cmd.Flags().Changed("math") {
		cfg.MathMode = mathMode
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := logger.NewLoggerWithLevel(cfg.LogLevel)
	if cfg.Debug {
		log = logger.NewLogger(true)
	}
	return &runtime{cfg: cfg, log: log}, nil
}

// markerFormat 配置中的占位符格式
func (r *runtime) markerFormat() mui.MarkerFormat {
	return mui.MarkerFormat{Prefix: r.cfg.MarkerPrefix, Suffix: r.cfg.MarkerSuffix}
}

// pipeline 按配置组装渲染管线
func (r *runtime) pipeline() (*mui.Pipeline, error) {
	cfg := r.cfg
	opts := []mui.PipelineOption{
		mui.WithLogger(r.log),
		mui.WithStrict(cfg.StrictPlaceholders),
		mui.WithMarkerFormat(r.markerFormat()),
		mui.WithDiagnosticWidth(cfg.DiagnosticWidth),
	}

	if cfg.MathMode == config.MathModeMathJax {
		opts = append(opts, mui.WithMathRenderer(markdown.NewMathJaxRenderer()))
	}

	if cfg.GlossaryPath != "" {
		g, err := glossary.Load(cfg.GlossaryPath, glossary.WithMaxDistance(cfg.GlossaryMaxDist))
		if err != nil {
			return nil, err
		}
		r.log.Debug("glossary loaded", zap.String("path", cfg.GlossaryPath), zap.Int("entries", g.Len()))
		opts = append(opts, mui.WithConceptResolver(g))
	}

	renderer := markdown.NewRenderer(markdown.Options{
		Typographer: cfg.Markdown.Typographer,
		HardWraps:   cfg.Markdown.HardWraps,
		UnsafeHTML:  cfg.Markdown.UnsafeHTML,
	})
	return mui.NewPipeline(renderer, opts...), nil
}

// inputPath 省略文件参数时读标准输入
func inputPath(args []string) string {
	if len(args) == 0 {
		return "-"
	}
	return args[0]
}

// readInput 读取输入并转为 UTF-8
func readInput(cmd *cobra.Command, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("读取输入失败: %w", err)
	}
	return formatter.DecodeText(data), nil
}

// readMessage 读取并解析一条消息
func readMessage(cmd *cobra.Command, path string) (*transcript.Message, error) {
	text, err := readInput(cmd, path)
	if err != nil {
		return nil, err
	}
	return transcript.Parse([]byte(text))
}
