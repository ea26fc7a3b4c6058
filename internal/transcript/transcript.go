package transcript

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Message 一条助手消息，可带 YAML 头信息
type Message struct {
	Title   string
	Session string
	Meta    map[string]interface{}
	// Body 去掉头信息后的消息正文
	Body string
}

var md = goldmark.New(goldmark.WithExtensions(meta.Meta))

// Parse 解析消息。开头的 "---" 块不是 YAML 映射时按分隔线处理，整段都是正文。
func Parse(data []byte) (*Message, error) {
	front, body := SplitFrontMatter(string(data))
	msg := &Message{Body: body, Meta: map[string]interface{}{}}
	if front == "" {
		return msg, nil
	}

	m, err := parseFront(front)
	if err != nil {
		return nil, fmt.Errorf("解析头信息失败: %w", err)
	}
	if m != nil {
		msg.Meta = m
	}
	msg.Title = stringField(msg.Meta, "title")
	msg.Session = stringField(msg.Meta, "session")
	return msg, nil
}

// SplitFrontMatter 拆出以首行 "---" 开始、下一个 "---" 行结束的头信息块（含分隔行）。
// 块内容必须能解析为 YAML 映射，否则视为正文里的分隔线，front 为空。
func SplitFrontMatter(src string) (front, body string) {
	front, body = cutFrontMatter(src)
	if front == "" {
		return "", src
	}
	if _, err := parseFront(front); err != nil {
		return "", src
	}
	return front, body
}

func cutFrontMatter(src string) (front, body string) {
	first, rest, ok := strings.Cut(src, "\n")
	if !ok || strings.TrimRight(first, " \t\r") != "---" {
		return "", src
	}
	offset := len(first) + 1
	for rest != "" {
		line, next, found := strings.Cut(rest, "\n")
		if strings.TrimRight(line, " \t\r") == "---" {
			if !found {
				return src, ""
			}
			end := offset + len(line) + 1
			return src[:end], src[end:]
		}
		offset += len(line) + 1
		rest = next
	}
	// 没有结束行，整段按正文处理
	return "", src
}

// parseFront 用 goldmark-meta 解析头信息块
func parseFront(front string) (map[string]interface{}, error) {
	ctx := parser.NewContext()
	md.Parser().Parse(text.NewReader([]byte(front)), parser.WithContext(ctx))
	return meta.TryGet(ctx)
}

func stringField(m map[string]interface{}, key string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
