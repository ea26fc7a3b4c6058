package mui

import (
	"fmt"
	"strings"
)

// Describe 返回组件的单行摘要，用于日志和命令行展示
func Describe(c Component) string {
	d := &describer{}
	c.Accept(d)
	return d.out
}

type describer struct {
	out string
}

func (d *describer) VisitButtons(c *Buttons) {
	d.out = "buttons: " + optionValues(c.Options)
}

func (d *describer) VisitCheckboxes(c *Checkboxes) {
	d.out = fmt.Sprintf("checkboxes %q: %s", c.Label, optionValues(c.Options))
}

func (d *describer) VisitSlider(c *Slider) {
	d.out = fmt.Sprintf("slider %q: %d..%d step %d, value %d", c.Label, c.Min, c.Max, c.Step, c.Value)
}

func (d *describer) VisitRating(c *Rating) {
	d.out = fmt.Sprintf("rating %q: max %d", c.Label, c.Max)
}

func (d *describer) VisitToggle(c *Toggle) {
	d.out = fmt.Sprintf("toggle %q: checked=%t", c.Label, c.Checked)
}

func (d *describer) VisitImage(c *Image) {
	d.out = "image: " + c.Src
}

func (d *describer) VisitVideo(c *Video) {
	d.out = "video: " + c.VideoID
}

func (d *describer) VisitDatePicker(c *DatePicker) {
	d.out = fmt.Sprintf("date %q: [%s, %s]", c.Label, c.Min, c.Max)
}

func (d *describer) VisitGrid(c *Grid) {
	d.out = fmt.Sprintf("grid: %d cells in %d cols", len(c.Cells), c.Cols)
}

func (d *describer) VisitStat(c *Stat) {
	d.out = fmt.Sprintf("stat: %s = %s", c.Label, c.Value)
}

func (d *describer) VisitTable(c *Table) {
	d.out = fmt.Sprintf("table: %d cols x %d rows", len(c.Headers), len(c.Rows))
}

func (d *describer) VisitTabs(c *Tabs) {
	labels := make([]string, len(c.Tabs))
	for i, t := range c.Tabs {
		labels[i] = t.Label
	}
	d.out = "tabs: " + strings.Join(labels, " | ")
}

func (d *describer) VisitAccordion(c *Accordion) {
	titles := make([]string, len(c.Items))
	for i, it := range c.Items {
		titles[i] = it.Title
	}
	d.out = "accordion: " + strings.Join(titles, " | ")
}

func (d *describer) VisitCard(c *Card) {
	d.out = fmt.Sprintf("card %q", c.Title)
	if c.Buttons != nil {
		d.out += " with " + optionValues(c.Buttons.Options)
	}
}

func (d *describer) VisitDiagnostic(c *Diagnostic) {
	d.out = fmt.Sprintf("error in %s: %s", c.Component, c.Message)
}

func (d *describer) VisitEmpty(c *Empty) {
	d.out = fmt.Sprintf("unknown type %q", c.TagType)
}

func optionValues(opts []Option) string {
	values := make([]string, len(opts))
	for i, o := range opts {
		values[i] = o.Value
	}
	return "[" + strings.Join(values, ", ") + "]"
}
