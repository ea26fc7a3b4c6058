package mui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextSegment(t *testing.T) {
	seg := &TextSegment{SafeMarkup: `<p>Read about <span class="concept-link" data-concept="loss" data-value="loss">loss</span>
and <strong>more</strong>.</p>`}

	assert.Equal(t, "Read about loss and more.", seg.PlainText())
	assert.Equal(t, []string{"loss"}, seg.Concepts())
	assert.Empty(t, (&TextSegment{SafeMarkup: "<p>none</p>"}).Concepts())
}

func TestConceptLinker(t *testing.T) {
	l := &conceptLinker{resolver: mapResolver{"a<b": "ab"}}
	assert.Equal(t,
		`<span class="concept-link" data-concept="a&lt;b" data-value="a&lt;b" data-glossary="ab">a&lt;b</span>`,
		l.render(ConceptReference{Term: "a<b"}))

	var none *conceptLinker
	assert.Equal(t, ConceptReference{Term: "x"}, none.resolve(ConceptReference{Term: "x"}))
}
