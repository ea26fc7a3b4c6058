package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const message = `---
title: Demo
session: s-1
---
How confident are you with <concept>gradient descent</concept>?

<mui type="slider" label="Confidence" min="0" max="10"></mui>

Then pick one:

<mui type="buttons"><option value="more">Explain more</option><option value="next">Next</option></mui>
`

// setup 写入配置和消息文件
func setup(t *testing.T, extraConfig string) (cfgPath, msgPath string) {
	t.Helper()
	dir := t.TempDir()

	glossaryPath := filepath.Join(dir, "glossary.toml")
	require.NoError(t, os.WriteFile(glossaryPath, []byte("[[entry]]\nkey = \"gd\"\nterm = \"gradient descent\"\n"), 0o644))

	cfgPath = filepath.Join(dir, "promptpane.yaml")
	cfg := "glossary_path: " + glossaryPath + "\n" + extraConfig
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))

	msgPath = filepath.Join(dir, "message.md")
	require.NoError(t, os.WriteFile(msgPath, []byte(message), 0o644))
	return cfgPath, msgPath
}

// run 在进程内执行命令
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand("test", "none", "unknown")
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRenderJSON(t *testing.T) {
	cfgPath, msgPath := setup(t, "")

	out, err := run(t, "", "render", "--config", cfgPath, msgPath)
	require.NoError(t, err)

	var rendered struct {
		Title   string `json:"title"`
		Session string `json:"session"`
		Items   []struct {
			Kind string          `json:"kind"`
			Data json.RawMessage `json:"data"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &rendered), out)

	assert.Equal(t, "Demo", rendered.Title)
	assert.Equal(t, "s-1", rendered.Session)

	var kinds []string
	for _, it := range rendered.Items {
		kinds = append(kinds, it.Kind)
	}
	assert.Equal(t, []string{"text", "slider", "text", "buttons"}, kinds)

	var text string
	require.NoError(t, json.Unmarshal(rendered.Items[0].Data, &text))
	assert.Contains(t, text, `data-glossary="gd"`)

	var slider struct {
		ID    string `json:"id"`
		Value int    `json:"value"`
	}
	require.NoError(t, json.Unmarshal(rendered.Items[1].Data, &slider))
	assert.Equal(t, "slider-1", slider.ID)
	assert.Equal(t, 5, slider.Value)
}

func TestRenderFromStdin(t *testing.T) {
	cfgPath, _ := setup(t, "")

	out, err := run(t, "Hello <mui type=\"toggle\" label=\"Dark\"></mui>", "render", "--config", cfgPath, "-f", "text", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "Hello")
	assert.Contains(t, out, `[toggle "Dark": checked=false]`)
}

func TestRenderLeadingThematicBreak(t *testing.T) {
	cfgPath, _ := setup(t, "")

	out, err := run(t, "---\nIntro paragraph.\n\n---\nPick <mui type=\"toggle\" label=\"Dark\"></mui>", "render", "--config", cfgPath, "-f", "text", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "Intro paragraph.")
	assert.Contains(t, out, `[toggle "Dark": checked=false]`)
}

func TestRenderHTML(t *testing.T) {
	cfgPath, msgPath := setup(t, "")

	out, err := run(t, "", "render", "--config", cfgPath, "--format", "html", msgPath)
	require.NoError(t, err)
	assert.Contains(t, out, `class="mui-component" data-type="slider"`)
	assert.Contains(t, out, `data-type="buttons"`)
	assert.Contains(t, out, `<span class="concept-link"`)
}

func TestRenderUnsupportedFormat(t *testing.T) {
	cfgPath, msgPath := setup(t, "")
	_, err := run(t, "", "render", "--config", cfgPath, "-f", "yaml", msgPath)
	assert.Error(t, err)
}

func TestRenderMathJax(t *testing.T) {
	cfgPath, _ := setup(t, "")
	out, err := run(t, "Area $x^2$", "render", "--config", cfgPath, "--math", "mathjax", "-f", "html")
	require.NoError(t, err)
	assert.Contains(t, out, "x^2")
	assert.NotContains(t, out, "$x^2$")
}

func TestInvalidConfig(t *testing.T) {
	cfgPath, msgPath := setup(t, "math_mode: svg\n")
	_, err := run(t, "", "render", "--config", cfgPath, msgPath)
	assert.Error(t, err)
}

func TestInspect(t *testing.T) {
	cfgPath, msgPath := setup(t, "")

	out, err := run(t, "", "inspect", "--config", cfgPath, msgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "消息: Demo")
	assert.Contains(t, out, "slider-1")
	assert.Contains(t, out, "默认值")
	assert.Contains(t, out, "buttons-1")
	assert.Contains(t, out, "文本段 2，组件 2，诊断 0")
	assert.Contains(t, out, "术语: gradient descent")
}

func TestInspectDiagnostics(t *testing.T) {
	cfgPath, _ := setup(t, "")

	out, err := run(t, `<mui type="tabs">no tabs here</mui>`, "inspect", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "diagnostic")
	assert.Contains(t, out, "诊断 1")
}

func TestFormat(t *testing.T) {
	cfgPath, msgPath := setup(t, "")

	out, err := run(t, "", "format", "--config", cfgPath, msgPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "---\ntitle: Demo\nsession: s-1\n---\n"), out)
	assert.Contains(t, out, `<mui type="slider" label="Confidence" min="0" max="10"></mui>`)
	assert.Contains(t, out, "<concept>gradient descent</concept>")

	target := filepath.Join(t.TempDir(), "out.md")
	_, err = run(t, "", "format", "--config", cfgPath, "-o", target, msgPath)
	require.NoError(t, err)
	written, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, out, string(written))
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "test (commit none, built unknown)")
}
