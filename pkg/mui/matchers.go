package mui

import (
	"regexp"
	"strings"

	"github.com/dlclark/regexp2"
)

var (
	conceptPattern = regexp.MustCompile(`(?s)<concept>(.*?)</concept>`)

	// 按优先级：\[...\]、$$...$$、\(...\)、$...$（不与 $$ 相邻）
	mathPattern = regexp2.MustCompile(
		`\\\[.*?\\\]|\$\$.*?\$\$|\\\(.*?\\\)|(?<!\$)\$(?!\$)[^$]+?\$(?!\$)`,
		regexp2.Singleline,
	)
)

// TagMatcher 以 ScanTags 的结果作为匹配，保证替换的区间与扫描到的元素一一对应
var TagMatcher Matcher[Tag] = MatcherFunc[Tag](func(text string) []Match[Tag] {
	tags := ScanTags(text)
	matches := make([]Match[Tag], 0, len(tags))
	for _, t := range tags {
		matches = append(matches, Match[Tag]{Start: t.Start, End: t.End, Payload: t})
	}
	return matches
})

// ConceptMatcher 匹配 <concept>term</concept>
var ConceptMatcher Matcher[ConceptReference] = MatcherFunc[ConceptReference](func(text string) []Match[ConceptReference] {
	locs := conceptPattern.FindAllStringSubmatchIndex(text, -1)
	matches := make([]Match[ConceptReference], 0, len(locs))
	for _, loc := range locs {
		matches = append(matches, Match[ConceptReference]{
			Start:   loc[0],
			End:     loc[1],
			Payload: ConceptReference{Term: strings.TrimSpace(text[loc[2]:loc[3]])},
		})
	}
	return matches
})

// MathMatcher 单次从左到右扫描四种公式定界符
var MathMatcher Matcher[MathBlock] = MatcherFunc[MathBlock](findMath)

func findMath(text string) []Match[MathBlock] {
	m, err := mathPattern.FindStringMatch(text)
	if err != nil || m == nil {
		return nil
	}

	// regexp2 的位置以 rune 计
	offsets := runeOffsets(text)
	var matches []Match[MathBlock]
	for m != nil {
		start := offsets[m.Index]
		end := offsets[m.Index+m.Length]
		raw := text[start:end]
		style := MathInline
		if strings.HasPrefix(raw, `\[`) || strings.HasPrefix(raw, "$$") {
			style = MathDisplay
		}
		matches = append(matches, Match[MathBlock]{
			Start:   start,
			End:     end,
			Payload: MathBlock{Style: style, Raw: raw},
		})

		m, err = mathPattern.FindNextMatch(m)
		if err != nil {
			break
		}
	}
	return matches
}

// runeOffsets 第 i 个 rune 的字节偏移，最后追加 len(s)
func runeOffsets(s string) []int {
	offsets := make([]int, 0, len(s)+1)
	for i := range s {
		offsets = append(offsets, i)
	}
	return append(offsets, len(s))
}

// NewComponentCodec 组件层编解码器
func NewComponentCodec(format MarkerFormat) *Codec[Tag] {
	return NewCodec(KindComponent, TagMatcher, format)
}

// NewConceptCodec 术语引用编解码器
func NewConceptCodec(format MarkerFormat) *Codec[ConceptReference] {
	return NewCodec(KindConcept, ConceptMatcher, format)
}

// NewMathCodec 公式编解码器
func NewMathCodec(format MarkerFormat) *Codec[MathBlock] {
	return NewCodec(KindMath, MathMatcher, format)
}
