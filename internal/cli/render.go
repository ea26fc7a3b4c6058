package cli

import (
	"encoding/json"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/nerdneilsfield/go-promptpane/pkg/mui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// 输出格式
const (
	outputJSON = "json"
	outputHTML = "html"
	outputText = "text"
)

// renderedItem JSON 输出中的一项
type renderedItem struct {
	Kind string      `json:"kind"`
	Data interface{} `json:"data"`
}

// renderedMessage JSON 输出
type renderedMessage struct {
	Title   string         `json:"title,omitempty"`
	Session string         `json:"session,omitempty"`
	Items   []renderedItem `json:"items"`
}

// NewRenderCommand 创建 render 命令
func NewRenderCommand() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "render [file|-]",
		Short: "渲染一条消息",
		Long: `渲染一条助手消息，按顺序输出文本段和组件。

输出格式：
  json  每项为 {"kind": ..., "data": ...}，文本段的 kind 为 "text"
  html  文本段原样输出，组件输出为带 data-props 的挂载点
  text  文本段的纯文本和组件摘要`,
		Args: cobra.MaximumNArgs(1),
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
			rt.log.Debug("message rendered", zap.String("title", msg.Title), zap.Int("items", len(items)))

			out := cmd.OutOrStdout()
			switch outputFormat {
			case outputJSON:
				return writeJSON(out, msg.Title, msg.Session, items)
			case outputHTML:
				return writeHTML(out, items)
			case outputText:
				return writeText(out, items)
			default:
				return fmt.Errorf("不支持的输出格式: %s", outputFormat)
			}
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", outputJSON, "输出格式 (json, html, text)")
	return cmd
}

func toRenderedItems(items []mui.OutputItem) []renderedItem {
	out := make([]renderedItem, 0, len(items))
	for _, it := range items {
		switch v := it.(type) {
		case *mui.TextSegment:
			out = append(out, renderedItem{Kind: "text", Data: v.SafeMarkup})
		case mui.Component:
			out = append(out, renderedItem{Kind: v.Type(), Data: v})
		}
	}
	return out
}

func writeJSON(w io.Writer, title, session string, items []mui.OutputItem) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(renderedMessage{
		Title:   title,
		Session: session,
		Items:   toRenderedItems(items),
	})
}

func writeHTML(w io.Writer, items []mui.OutputItem) error {
	var b strings.Builder
	for _, it := range items {
		switch v := it.(type) {
		case *mui.TextSegment:
			b.WriteString(v.SafeMarkup)
		case mui.Component:
			props, err := json.Marshal(v)
			if err != nil {
				return fmt.Errorf("序列化组件失败: %w", err)
			}
			fmt.Fprintf(&b, "<div class=\"mui-component\" data-type=\"%s\" data-props=\"%s\"></div>\n",
				html.EscapeString(v.Type()), html.EscapeString(string(props)))
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeText(w io.Writer, items []mui.OutputItem) error {
	for _, it := range items {
		var line string
		switch v := it.(type) {
		case *mui.TextSegment:
			line = v.PlainText()
		case mui.Component:
			line = "[" + mui.Describe(v) + "]"
		}
		if line == "" {
			continue
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
