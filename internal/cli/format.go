package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/nerdneilsfield/go-promptpane/internal/formatter"
	"github.com/nerdneilsfield/go-promptpane/internal/transcript"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewFormatCommand 创建 format 命令
func NewFormatCommand() *cobra.Command {
	var (
		outputFile string
		check      bool
	)

	cmd := &cobra.Command{
		Use:   "format [file|-]",
		Short: "规范化消息的 Markdown 源码",
		Long: `用 markdownfmt 规范化消息源码。<mui> 标签、<concept> 术语和公式原样保留。

用法示例：
  promptpane format message.md              # 输出到标准输出
  promptpane format -o clean.md message.md  # 输出到指定文件
  promptpane format --check message.md      # 仅检查是否已规范化`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := loadRuntime(cmd)
			if err != nil {
				return err
			}
			defer func() {
				_ = rt.log.Sync()
			}()

			src, err := readInput(cmd, inputPath(args))
			if err != nil {
				return err
			}

			// 头信息不交给 markdownfmt
			front, body := transcript.SplitFrontMatter(src)
			f := formatter.NewMarkdownFormatter(rt.markerFormat(), rt.log)
			formatted, err := f.Format([]byte(body))
			out := append([]byte(front), formatted...)
			if err != nil {
				var fe *formatter.FormatError
				if !errors.As(err, &fe) || rt.cfg.StrictPlaceholders {
					return err
				}
				// 保留原文输出
				rt.log.Warn("格式化失败，输出原文", zap.Error(err))
			}

			if check {
				if string(out) != src {
					return fmt.Errorf("%s 需要格式化", inputPath(args))
				}
				return nil
			}
			if outputFile != "" {
				if err := os.WriteFile(outputFile, out, 0o644); err != nil {
					return fmt.Errorf("写入输出文件失败: %w", err)
				}
				rt.log.Info("已写入", zap.String("path", outputFile))
				return nil
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "输出文件路径")
	cmd.Flags().BoolVar(&check, "check", false, "仅检查是否已规范化")
	return cmd
}
