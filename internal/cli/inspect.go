package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-runewidth"
	"github.com/nerdneilsfield/go-promptpane/pkg/mui"
	"github.com/spf13/cobra"
)

// 摘要列的显示宽度
const summaryWidth = 60

// NewInspectCommand 创建 inspect 命令
func NewInspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [file|-]",
		Short: "以表格列出消息中的文本段和组件",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := loadRuntime(cmd)
			if err != nil {
				return err
			}
			defer func() {
				_ = rt.log.Sync()
			}()

			msg, err := readMessage(cmd, inputPath(args))
			if err != nil {
				return err
			}
			p, err := rt.pipeline()
			if err != nil {
				return err
			}
			items, err := p.Process(msg.Body)
			if err != nil {
				return err
			}

			title := msg.Title
			if title == "" {
				title = inputPath(args)
			}
			writeInspection(cmd.OutOrStdout(), title, items)
			return nil
		},
	}
	return cmd
}

// writeInspection 输出标题、明细表和统计
func writeInspection(w io.Writer, title string, items []mui.OutputItem) {
	heading := color.New(color.FgCyan, color.Bold)
	heading.Fprintf(w, "消息: %s\n", title)

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"#", "类型", "ID", "默认值", "摘要"})

	var texts, components, diagnostics int
	var concepts []string
	for i, it := range items {
		switch v := it.(type) {
		case *mui.TextSegment:
			texts++
			concepts = append(concepts, v.Concepts()...)
			tw.AppendRow(table.Row{i + 1, "text", "", "", truncate(v.PlainText())})
		case mui.Component:
			components++
			if _, ok := v.(*mui.Diagnostic); ok {
				diagnostics++
			}
			tw.AppendRow(table.Row{i + 1, v.Type(), elementID(v), defaultActivation(v), truncate(mui.Describe(v))})
		}
	}
	tw.SetStyle(table.StyleLight)
	tw.Render()

	fmt.Fprintf(w, "文本段 %d，组件 %d，诊断 %d\n", texts, components, diagnostics)
	if len(concepts) > 0 {
		fmt.Fprintf(w, "术语: %s\n", strings.Join(concepts, ", "))
	}
	if diagnostics > 0 {
		color.New(color.FgYellow).Fprintln(w, "存在无法解析的组件，详见诊断行")
	}
}

func elementID(c mui.Component) string {
	switch v := c.(type) {
	case mui.Interactive:
		return v.ElementID()
	case *mui.Tabs:
		return v.ID
	}
	return ""
}

// defaultActivation 未操作直接提交时的激活值
func defaultActivation(c mui.Component) string {
	if d, ok := c.(mui.Defaulter); ok {
		return d.DefaultActivation()
	}
	return ""
}

func truncate(s string) string {
	return runewidth.Truncate(s, summaryWidth, "…")
}
