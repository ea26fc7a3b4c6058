package mui

import (
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

var (
	youtubePattern = regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/)([a-zA-Z0-9_-]{11})`)

	rowPattern  = regexp.MustCompile(`(?s)<row>(.*?)</row>`)
	tabPattern  = regexp.MustCompile(`(?s)<tab\s+label=["“”'](.*?)["“”']>(.*?)</tab>`)
	itemPattern = regexp.MustCompile(`(?s)<item\s+title=["“”'](.*?)["“”']>(.*?)</item>`)
)

const youtubeEmbedPrefix = "https://www.youtube.com/embed/"

func buildButtons(f *Factory, tag Tag, seq *Sequence) Component {
	if len(tag.Options) == 0 {
		return f.diagnose(tag, "Buttons require at least one <option>", `<option value="v">Label</option>`)
	}
	return &Buttons{ID: seq.Next("buttons"), Options: withLabels(tag.Options)}
}

func buildCheckboxes(f *Factory, tag Tag, seq *Sequence) Component {
	if len(tag.Options) == 0 {
		return f.diagnose(tag, "Checkboxes require at least one <option>", `<option value="v">Label</option>`)
	}
	return &Checkboxes{
		ID:      seq.Next("checkbox-group"),
		Label:   tag.Attr("label", ""),
		Options: withLabels(tag.Options),
	}
}

func buildSlider(f *Factory, tag Tag, seq *Sequence) Component {
	lo, err := tag.IntAttr("min", 0)
	if err != nil {
		return f.diagnose(tag, "Slider attribute min must be an integer", "")
	}
	hi, err := tag.IntAttr("max", 100)
	if err != nil {
		return f.diagnose(tag, "Slider attribute max must be an integer", "")
	}
	step, err := tag.IntAttr("step", 1)
	if err != nil {
		return f.diagnose(tag, "Slider attribute step must be an integer", "")
	}
	if lo > hi {
		return f.diagnose(tag, fmt.Sprintf("Slider min (%d) is greater than max (%d)", lo, hi), "")
	}
	if step <= 0 {
		return f.diagnose(tag, "Slider step must be positive", "")
	}

	// hi-lo 可能超出 int 范围，跨度一律按 uint64 计算
	span := uint64(hi) - uint64(lo)
	value, err := tag.IntAttr("value", lo+int(span/2))
	if err != nil {
		return f.diagnose(tag, "Slider attribute value must be an integer", "")
	}
	if value < lo || value > hi {
		clamped := min(max(value, lo), hi)
		f.logger.Debug("slider value clamped",
			zap.Int("value", value), zap.Int("min", lo), zap.Int("max", hi), zap.Int("clamped", clamped))
		value = clamped
	}

	return &Slider{
		ID:    seq.Next("slider"),
		Label: tag.Attr("label", ""),
		Min:   lo,
		Max:   hi,
		Step:  step,
		Value: value,
		Ticks: sliderTicks(lo, span),
	}
}

// sliderTicks 大约 10 个刻度，按下标生成
func sliderTicks(lo int, span uint64) []int {
	interval := span / 10
	if interval < 1 {
		interval = 1
	}
	n := span/interval + 1
	ticks := make([]int, 0, n)
	for i := uint64(0); i < n; i++ {
		ticks = append(ticks, int(uint64(lo)+i*interval))
	}
	return ticks
}

func buildRating(f *Factory, tag Tag, seq *Sequence) Component {
	top, err := tag.IntAttr("max", 5)
	if err != nil || top < 1 {
		return f.diagnose(tag, "Rating max must be a positive integer", "")
	}
	return &Rating{ID: seq.Next("rating"), Label: tag.Attr("label", ""), Max: top}
}

func buildToggle(_ *Factory, tag Tag, seq *Sequence) Component {
	return &Toggle{
		ID:      seq.Next("toggle"),
		Label:   tag.Attr("label", ""),
		Checked: strings.EqualFold(strings.TrimSpace(tag.Attr("checked", "false")), "true"),
	}
}

func buildImage(f *Factory, tag Tag, _ *Sequence) Component {
	if !tag.HasAttr("src") {
		return f.diagnose(tag, "No image source provided", `<mui type="image" src="https://..."></mui>`)
	}
	caption := tag.Attr("caption", "")
	def := caption
	if def == "" {
		def = "Image"
	}
	return &Image{Src: tag.Attrs["src"], Alt: tag.Attr("alt", def), Caption: caption}
}

func buildVideo(f *Factory, tag Tag, _ *Sequence) Component {
	if !tag.HasAttr("url") {
		return f.diagnose(tag, "No video URL provided", `<mui type="video" url="https://www.youtube.com/watch?v=..."></mui>`)
	}
	url := tag.Attrs["url"]
	m := youtubePattern.FindStringSubmatch(url)
	if m == nil {
		return f.diagnose(tag, "Invalid YouTube URL: "+url, "")
	}
	return &Video{
		URL:      url,
		VideoID:  m[1],
		EmbedURL: youtubeEmbedPrefix + m[1],
		Caption:  tag.Attr("caption", ""),
	}
}

func buildDatePicker(_ *Factory, tag Tag, seq *Sequence) Component {
	return &DatePicker{
		ID:    seq.Next("date"),
		Label: tag.Attr("label", ""),
		Min:   tag.Attr("min", ""),
		Max:   tag.Attr("max", ""),
		Value: tag.Attr("value", ""),
	}
}

func buildGrid(f *Factory, tag Tag, _ *Sequence) Component {
	content := strings.TrimSpace(tag.RawContent)
	if content == "" {
		return f.diagnose(tag, "Grid must have content", "<row>...</row>")
	}

	cols, err := tag.IntAttr("cols", 2)
	if err != nil || cols < 1 {
		return f.diagnose(tag, "Grid cols must be a positive integer", "")
	}
	grid := &Grid{Cols: cols, Gap: tag.Attr("gap", "4")}

	responsive := []struct {
		name string
		dst  *int
	}{
		{"cols_sm", &grid.ColsSm},
		{"cols_md", &grid.ColsMd},
		{"cols_lg", &grid.ColsLg},
		{"cols_xl", &grid.ColsXl},
	}
	for _, r := range responsive {
		if !tag.HasAttr(r.name) {
			continue
		}
		n, err := tag.IntAttr(r.name, 0)
		if err != nil {
			return f.diagnose(tag, fmt.Sprintf("Grid %s must be an integer", r.name), "")
		}
		*r.dst = n
	}

	for _, row := range splitRows(content) {
		grid.Cells = append(grid.Cells, f.renderChild(row))
	}
	return grid
}

func buildStat(f *Factory, tag Tag, _ *Sequence) Component {
	if !tag.HasAttr("label") || !tag.HasAttr("value") {
		return f.diagnose(tag, "Stat requires label and value attributes", `<mui type="stat" label="..." value="..."></mui>`)
	}
	desc := tag.Attr("desc", "")
	if desc == "" {
		desc = tag.Attr("change", "")
	}
	return &Stat{Label: tag.Attrs["label"], Value: tag.Attrs["value"], Desc: desc}
}

func buildTable(f *Factory, tag Tag, _ *Sequence) Component {
	if !tag.HasAttr("headers") {
		return f.diagnose(tag, "Table requires headers attribute", `<mui type="table" headers="A,B">...</mui>`)
	}

	table := &Table{}
	for _, h := range strings.Split(tag.Attrs["headers"], ",") {
		table.Headers = append(table.Headers, strings.TrimSpace(h))
	}

	for _, row := range splitRows(strings.TrimSpace(tag.RawContent)) {
		sep := ","
		if strings.Contains(row, "|") {
			sep = "|"
		}
		var cells []string
		for _, cell := range strings.Split(row, sep) {
			cells = append(cells, f.renderChild(cell))
		}
		table.Rows = append(table.Rows, cells)
	}
	return table
}

func buildTabs(f *Factory, tag Tag, seq *Sequence) Component {
	content := strings.TrimSpace(tag.RawContent)
	found := tabPattern.FindAllStringSubmatch(content, -1)
	if len(found) == 0 {
		return f.diagnose(tag, "Tab parsing failed: tabs must contain <tab> items", `<tab label="Label">Content</tab>`)
	}

	tabs := &Tabs{ID: seq.Next("tabs")}
	for _, m := range found {
		tabs.Tabs = append(tabs.Tabs, Tab{
			Label: trimQuotes(m[1]),
			Body:  f.renderChild(m[2]),
		})
	}
	return tabs
}

func buildAccordion(f *Factory, tag Tag, _ *Sequence) Component {
	content := strings.TrimSpace(tag.RawContent)
	found := itemPattern.FindAllStringSubmatch(content, -1)
	if len(found) == 0 {
		return f.diagnose(tag, "Accordion parsing failed: accordion must contain <item> items", `<item title="Title">Content</item>`)
	}

	acc := &Accordion{}
	for i, m := range found {
		acc.Items = append(acc.Items, AccordionItem{
			Title: trimQuotes(m[1]),
			Body:  f.renderChild(m[2]),
			Open:  i == 0,
		})
	}
	return acc
}

func buildCard(f *Factory, tag Tag, seq *Sequence) Component {
	card := &Card{Title: tag.Attr("title", "")}
	if len(tag.Options) > 0 {
		card.Buttons = &Buttons{ID: seq.Next("buttons"), Options: withLabels(tag.Options)}
	}
	if body := strings.TrimSpace(tag.RawContent); body != "" {
		card.Body = f.renderChild(body)
	}
	return card
}

// splitRows 优先取 <row>，没有时按非空行拆分
func splitRows(content string) []string {
	if found := rowPattern.FindAllStringSubmatch(content, -1); len(found) > 0 {
		rows := make([]string, 0, len(found))
		for _, m := range found {
			rows = append(rows, m[1])
		}
		return rows
	}

	var rows []string
	for _, line := range strings.Split(content, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			rows = append(rows, line)
		}
	}
	return rows
}

func withLabels(opts []Option) []Option {
	out := make([]Option, len(opts))
	for i, o := range opts {
		out[i] = Option{Value: o.Value, Label: o.DisplayLabel()}
	}
	return out
}

// trimQuotes 去掉标签/标题中残留的引号（弯引号属性值会被分词器当作未加引号的值）
func trimQuotes(s string) string {
	return strings.TrimSpace(strings.Trim(s, `"'“”`))
}
