package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// 公式还原模式
const (
	MathModeRaw     = "raw"
	MathModeMathJax = "mathjax"
)

// MarkdownConfig Markdown 渲染配置
type MarkdownConfig struct {
	Typographer bool `mapstructure:"typographer"` // 智能标点
	HardWraps   bool `mapstructure:"hard_wraps"`  // 单换行输出 <br>
	UnsafeHTML  bool `mapstructure:"unsafe_html"` // 允许消息中的原始 HTML
}

// Config 保存渲染管线的所有配置
type Config struct {
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"` // 日志级别，debug 为 true 时忽略

	// 占位符
	StrictPlaceholders bool   `mapstructure:"strict_placeholders"` // 占位符不一致时报错（开发/测试环境）
	MarkerPrefix       string `mapstructure:"marker_prefix"`
	MarkerSuffix       string `mapstructure:"marker_suffix"`

	MathMode        string         `mapstructure:"math_mode"`        // raw 或 mathjax
	GlossaryPath    string         `mapstructure:"glossary_path"`    // 词汇表 TOML 文件，可为空
	GlossaryMaxDist int            `mapstructure:"glossary_max_dist"` // 模糊匹配允许的最大编辑距离
	DiagnosticWidth int            `mapstructure:"diagnostic_width"` // 诊断信息预览宽度
	Markdown        MarkdownConfig `mapstructure:"markdown"`
}

// LoadConfig 从文件加载配置
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// 设置默认值
	setDefaults(v)

	// 如果配置路径已指定，则直接使用
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// 查找家目录中的配置文件
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigName(".promptpane")
		v.SetConfigType("yaml")
	}

	// 读取环境变量，例如 PROMPTPANE_MARKDOWN_TYPOGRAPHER
	v.SetEnvPrefix("PROMPTPANE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 读取配置文件
	if err := v.ReadInConfig(); err != nil {
		// 如果找不到配置文件，则使用默认值
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// NewDefaultConfig 创建一个新的默认配置
func NewDefaultConfig() *Config {
	return &Config{
		Debug:              false,
		LogLevel:           "info",
		StrictPlaceholders: false,
		MarkerPrefix:       "@@",
		MarkerSuffix:       "@@",
		MathMode:           MathModeRaw,
		GlossaryMaxDist:    3,
		DiagnosticWidth:    200,
		Markdown: MarkdownConfig{
			Typographer: false,
			HardWraps:   false,
			UnsafeHTML:  false,
		},
	}
}

// Validate 检查配置
func (c *Config) Validate() error {
	if c.MathMode != MathModeRaw && c.MathMode != MathModeMathJax {
		return fmt.Errorf("math_mode 必须是 %q 或 %q，当前为 %q", MathModeRaw, MathModeMathJax, c.MathMode)
	}
	if c.MarkerPrefix == "" || c.MarkerSuffix == "" {
		return errors.New("marker_prefix 和 marker_suffix 不能为空")
	}
	// 占位符必须原样穿过 Markdown 渲染器
	if strings.ContainsAny(c.MarkerPrefix+c.MarkerSuffix, "*_`[]<>&\\!#~|") {
		return fmt.Errorf("占位符前后缀 %q/%q 含有 Markdown 或 HTML 特殊字符", c.MarkerPrefix, c.MarkerSuffix)
	}
	if c.DiagnosticWidth <= 0 {
		return fmt.Errorf("diagnostic_width 必须为正数，当前为 %d", c.DiagnosticWidth)
	}
	if c.GlossaryMaxDist < 0 {
		return fmt.Errorf("glossary_max_dist 不能为负数，当前为 %d", c.GlossaryMaxDist)
	}
	return nil
}

// setDefaults 设置默认值
func setDefaults(v *viper.Viper) {
	d := NewDefaultConfig()
	v.SetDefault("debug", d.Debug)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("strict_placeholders", d.StrictPlaceholders)
	v.SetDefault("marker_prefix", d.MarkerPrefix)
	v.SetDefault("marker_suffix", d.MarkerSuffix)
	v.SetDefault("math_mode", d.MathMode)
	v.SetDefault("glossary_path", "")
	v.SetDefault("glossary_max_dist", d.GlossaryMaxDist)
	v.SetDefault("diagnostic_width", d.DiagnosticWidth)
	v.SetDefault("markdown.typographer", d.Markdown.Typographer)
	v.SetDefault("markdown.hard_wraps", d.Markdown.HardWraps)
	v.SetDefault("markdown.unsafe_html", d.Markdown.UnsafeHTML)
}
