package mui

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// paragraphRenderer 用 <p> 包裹输入，便于断言子内容是否经过 Markdown 渲染
var paragraphRenderer = RendererFunc(func(src string) (string, error) {
	return "<p>" + src + "</p>\n", nil
})

type mapResolver map[string]string

func (m mapResolver) Resolve(term string) (string, bool) {
	key, ok := m[term]
	return key, ok
}

func newTestFactory(t *testing.T) *Factory {
	return NewFactory(paragraphRenderer, DefaultMarkerFormat, mapResolver{"loss": "loss-fn"}, 0, zaptest.NewLogger(t))
}

// buildOne 扫描单个元素并构建组件
func buildOne(t *testing.T, f *Factory, element string) Component {
	tags := ScanTags(element)
	require.Len(t, tags, 1, "expected exactly one element in %q", element)
	return f.Build(tags[0], &Sequence{})
}

func TestFactorySimpleComponents(t *testing.T) {
	f := newTestFactory(t)

	t.Run("Slider Defaults", func(t *testing.T) {
		c := buildOne(t, f, `<mui type="slider" min="0" max="10"></mui>`)
		slider, ok := c.(*Slider)
		require.True(t, ok, "got %T", c)
		assert.Equal(t, "slider-1", slider.ID)
		assert.Equal(t, 5, slider.Value)
		assert.Equal(t, 1, slider.Step)
		assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, slider.Ticks)
	})

	t.Run("Slider Floor Midpoint", func(t *testing.T) {
		slider, ok := buildOne(t, f, `<mui type="slider" min="-5" max="0"></mui>`).(*Slider)
		require.True(t, ok)
		assert.Equal(t, -3, slider.Value)
	})

	t.Run("Slider Extreme Bounds", func(t *testing.T) {
		tests := []struct {
			name    string
			element string
			lo, hi  int
			value   int
		}{
			{"max int", `<mui type="slider" min="0" max="9223372036854775807"></mui>`, 0, math.MaxInt64, math.MaxInt64 / 2},
			{"full range", `<mui type="slider" min="-9223372036854775808" max="9223372036854775807"></mui>`, math.MinInt64, math.MaxInt64, -1},
			{"single point", `<mui type="slider" min="7" max="7"></mui>`, 7, 7, 7},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				slider, ok := buildOne(t, f, tt.element).(*Slider)
				require.True(t, ok)
				assert.Equal(t, tt.value, slider.Value)
				require.NotEmpty(t, slider.Ticks)
				assert.LessOrEqual(t, len(slider.Ticks), 11)
				assert.Equal(t, tt.lo, slider.Ticks[0])
				for i, tick := range slider.Ticks {
					assert.GreaterOrEqual(t, tick, tt.lo)
					assert.LessOrEqual(t, tick, tt.hi)
					if i > 0 {
						assert.Greater(t, tick, slider.Ticks[i-1])
					}
				}
			})
		}
	})

	t.Run("Slider Value Clamped", func(t *testing.T) {
		high, ok := buildOne(t, f, `<mui type="slider" min="0" max="10" value="150"></mui>`).(*Slider)
		require.True(t, ok)
		assert.Equal(t, 10, high.Value)

		low, ok := buildOne(t, f, `<mui type="slider" min="0" max="10" value="-3"></mui>`).(*Slider)
		require.True(t, ok)
		assert.Equal(t, 0, low.Value)

		_, err := low.Submit(low.Value)
		assert.NoError(t, err)
		assert.Equal(t, "0", low.DefaultActivation())
	})

	t.Run("Slider Ticks", func(t *testing.T) {
		slider, ok := buildOne(t, f, `<mui type="slider"></mui>`).(*Slider)
		require.True(t, ok)
		assert.Equal(t, []int{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100}, slider.Ticks)
		assert.Equal(t, 50, slider.Value)
	})

	t.Run("Slider Errors", func(t *testing.T) {
		tests := []struct {
			name    string
			element string
		}{
			{"min greater than max", `<mui type="slider" min="10" max="1"></mui>`},
			{"non integer", `<mui type="slider" min="abc"></mui>`},
			{"zero step", `<mui type="slider" step="0"></mui>`},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, ok := buildOne(t, f, tt.element).(*Diagnostic)
				assert.True(t, ok)
			})
		}
	})

	t.Run("Buttons", func(t *testing.T) {
		c := buildOne(t, f, `<mui type="buttons"><option value="yes">Sure</option><option value="no"></option></mui>`)
		buttons, ok := c.(*Buttons)
		require.True(t, ok)
		assert.Equal(t, "buttons-1", buttons.ID)
		assert.Equal(t, []Option{{Value: "yes", Label: "Sure"}, {Value: "no", Label: "no"}}, buttons.Options)
	})

	t.Run("Buttons Without Options", func(t *testing.T) {
		d, ok := buildOne(t, f, `<mui type="buttons"></mui>`).(*Diagnostic)
		require.True(t, ok)
		assert.Equal(t, "buttons", d.Component)
		assert.NotEmpty(t, d.Expected)

		d, ok = buildOne(t, f, `<mui type="checkboxes" label="Topics"></mui>`).(*Diagnostic)
		require.True(t, ok)
		assert.Equal(t, "checkboxes", d.Component)
	})

	t.Run("Checkboxes", func(t *testing.T) {
		c := buildOne(t, f, `<mui type="checkboxes" label="Topics"><option value="a">A</option><option value="b">B</option></mui>`)
		cb, ok := c.(*Checkboxes)
		require.True(t, ok)
		assert.Equal(t, "checkbox-group-1", cb.ID)
		assert.Equal(t, "Topics", cb.Label)
		assert.Len(t, cb.Options, 2)
	})

	t.Run("Rating And Toggle", func(t *testing.T) {
		rating, ok := buildOne(t, f, `<mui type="rating" label="Clarity"></mui>`).(*Rating)
		require.True(t, ok)
		assert.Equal(t, 5, rating.Max)

		toggle, ok := buildOne(t, f, `<mui type="toggle" checked="TRUE"></mui>`).(*Toggle)
		require.True(t, ok)
		assert.True(t, toggle.Checked)
	})

	t.Run("Image", func(t *testing.T) {
		img, ok := buildOne(t, f, `<mui type="image" src="a.png" caption="Cat"></mui>`).(*Image)
		require.True(t, ok)
		assert.Equal(t, "Cat", img.Alt)

		img, ok = buildOne(t, f, `<mui type="image" src="a.png"></mui>`).(*Image)
		require.True(t, ok)
		assert.Equal(t, "Image", img.Alt)

		_, ok = buildOne(t, f, `<mui type="image"></mui>`).(*Diagnostic)
		assert.True(t, ok)
	})

	t.Run("Video", func(t *testing.T) {
		v, ok := buildOne(t, f, `<mui type="video" url="https://www.youtube.com/watch?v=dQw4w9WgXcQ"></mui>`).(*Video)
		require.True(t, ok)
		assert.Equal(t, "dQw4w9WgXcQ", v.VideoID)
		assert.Equal(t, "https://www.youtube.com/embed/dQw4w9WgXcQ", v.EmbedURL)

		v, ok = buildOne(t, f, `<mui type="video" url="https://youtu.be/dQw4w9WgXcQ"></mui>`).(*Video)
		require.True(t, ok)
		assert.Equal(t, "dQw4w9WgXcQ", v.VideoID)

		d, ok := buildOne(t, f, `<mui type="video" url="https://vimeo.com/1"></mui>`).(*Diagnostic)
		require.True(t, ok)
		assert.Contains(t, d.Message, "Invalid YouTube URL")
	})

	t.Run("Date Picker", func(t *testing.T) {
		d, ok := buildOne(t, f, `<mui type="date" label="Exam" min="2024-01-01" max="2024-12-31"></mui>`).(*DatePicker)
		require.True(t, ok)
		assert.Equal(t, "date-1", d.ID)
		assert.Equal(t, "2024-01-01", d.Min)
	})

	t.Run("Stat Change Alias", func(t *testing.T) {
		s, ok := buildOne(t, f, `<mui type="stat" label="Score" value="92" change="+4"></mui>`).(*Stat)
		require.True(t, ok)
		assert.Equal(t, "+4", s.Desc)

		_, ok = buildOne(t, f, `<mui type="stat" label="Score"></mui>`).(*Diagnostic)
		assert.True(t, ok)
	})

	t.Run("Unknown Type", func(t *testing.T) {
		e, ok := buildOne(t, f, `<mui type="hologram"></mui>`).(*Empty)
		require.True(t, ok)
		assert.Equal(t, "hologram", e.TagType)
	})

	t.Run("Type Is Case Insensitive", func(t *testing.T) {
		_, ok := buildOne(t, f, `<mui type=" Rating "></mui>`).(*Rating)
		assert.True(t, ok)
	})
}

func TestFactoryComposites(t *testing.T) {
	f := newTestFactory(t)

	t.Run("Tabs", func(t *testing.T) {
		c := buildOne(t, f, `<mui type="tabs"><tab label="One">**bold**</tab><tab label=“Two”>plain & text</tab></mui>`)
		tabs, ok := c.(*Tabs)
		require.True(t, ok, "got %T", c)
		assert.Equal(t, "tabs-1", tabs.ID)
		require.Len(t, tabs.Tabs, 2)
		assert.Equal(t, Tab{Label: "One", Body: "<p>**bold**</p>"}, tabs.Tabs[0])
		assert.Equal(t, Tab{Label: "Two", Body: "plain &amp; text"}, tabs.Tabs[1])
	})

	t.Run("Malformed Tabs", func(t *testing.T) {
		d, ok := buildOne(t, f, `<mui type="tabs">just text</mui>`).(*Diagnostic)
		require.True(t, ok)
		assert.Equal(t, "tabs", d.Component)
		assert.Equal(t, "just text", d.Received)
		assert.Contains(t, d.Expected, "<tab")
	})

	t.Run("Accordion", func(t *testing.T) {
		c := buildOne(t, f, `<mui type="accordion"><item title="First">a</item><item title='Second'>- b</item></mui>`)
		acc, ok := c.(*Accordion)
		require.True(t, ok, "got %T", c)
		require.Len(t, acc.Items, 2)
		assert.True(t, acc.Items[0].Open)
		assert.False(t, acc.Items[1].Open)
		assert.Equal(t, "Second", acc.Items[1].Title)
		assert.Equal(t, "<p>- b</p>", acc.Items[1].Body)
	})

	t.Run("Grid Rows And Concepts", func(t *testing.T) {
		c := buildOne(t, f, `<mui type="grid" cols="3" cols_md="2"><row>See <concept>loss</concept></row><row>**x**</row></mui>`)
		grid, ok := c.(*Grid)
		require.True(t, ok, "got %T", c)
		assert.Equal(t, 3, grid.Cols)
		assert.Equal(t, 2, grid.ColsMd)
		assert.Equal(t, "4", grid.Gap)
		require.Len(t, grid.Cells, 2)
		assert.Equal(t, `See <span class="concept-link" data-concept="loss" data-value="loss" data-glossary="loss-fn">loss</span>`, grid.Cells[0])
		assert.Equal(t, "<p>**x**</p>", grid.Cells[1])
	})

	t.Run("Grid Lines Without Rows", func(t *testing.T) {
		grid, ok := buildOne(t, f, "<mui type=\"grid\">\nfirst\n\nsecond\n</mui>").(*Grid)
		require.True(t, ok)
		assert.Equal(t, []string{"first", "second"}, grid.Cells)
	})

	t.Run("Empty Grid", func(t *testing.T) {
		_, ok := buildOne(t, f, `<mui type="grid">  </mui>`).(*Diagnostic)
		assert.True(t, ok)
	})

	t.Run("Table", func(t *testing.T) {
		c := buildOne(t, f, "<mui type=\"table\" headers=\"Name, Score\">\nAda|97\nAlan, 95\n</mui>")
		table, ok := c.(*Table)
		require.True(t, ok, "got %T", c)
		assert.Equal(t, []string{"Name", "Score"}, table.Headers)
		assert.Equal(t, [][]string{{"Ada", "97"}, {"Alan", "95"}}, table.Rows)
	})

	t.Run("Table Without Headers", func(t *testing.T) {
		_, ok := buildOne(t, f, `<mui type="table">a|b</mui>`).(*Diagnostic)
		assert.True(t, ok)
	})

	t.Run("Card", func(t *testing.T) {
		c := buildOne(t, f, `<mui type="card" title="Next step">Read **chapter 2**<option value="go">Go</option></mui>`)
		card, ok := c.(*Card)
		require.True(t, ok, "got %T", c)
		assert.Equal(t, "Next step", card.Title)
		assert.Equal(t, "<p>Read **chapter 2**</p>", card.Body)
		require.NotNil(t, card.Buttons)
		assert.Equal(t, "buttons-1", card.Buttons.ID)
	})
}

func TestDiagnosticPreview(t *testing.T) {
	f := NewFactory(paragraphRenderer, DefaultMarkerFormat, nil, 10, nil)
	d, ok := buildOne(t, f, `<mui type="tabs">`+strings.Repeat("x", 50)+`</mui>`).(*Diagnostic)
	require.True(t, ok)
	assert.LessOrEqual(t, len(d.Received), 10)
	assert.True(t, strings.HasSuffix(d.Received, "..."))
}

func TestSequencePerCall(t *testing.T) {
	f := newTestFactory(t)
	seq := &Sequence{}
	tags := ScanTags(`<mui type="toggle"></mui><mui type="toggle"></mui>`)
	require.Len(t, tags, 2)

	first := f.Build(tags[0], seq).(*Toggle)
	second := f.Build(tags[1], seq).(*Toggle)
	assert.Equal(t, "toggle-1", first.ID)
	assert.Equal(t, "toggle-2", second.ID)
}
