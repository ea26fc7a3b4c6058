package glossary

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// DefaultMaxDistance 模糊匹配允许的默认编辑距离
const DefaultMaxDistance = 3

// Entry 词汇表中的一个条目
type Entry struct {
	Key     string   `toml:"key"`
	Term    string   `toml:"term"`
	Aliases []string `toml:"aliases"`
	Summary string   `toml:"summary"`
}

// file 词汇表文件结构
type file struct {
	Entries []Entry `toml:"entry"`
}

// Glossary 术语到词汇表键的查找表，构造后只读
type Glossary struct {
	entries []Entry
	byKey   map[string]*Entry
	byName  map[string]string // 规范化的术语或别名 -> 键
	names   []string          // byName 的键，按加入顺序
	maxDist int
}

// Option 词汇表选项
type Option func(*Glossary)

// WithMaxDistance 设置模糊匹配允许的最大编辑距离，0 表示只做精确匹配
func WithMaxDistance(d int) Option {
	return func(g *Glossary) { g.maxDist = d }
}

// Load 从 TOML 文件加载词汇表
func Load(path string, opts ...Option) (*Glossary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取词汇表失败: %w", err)
	}
	return Parse(string(data), opts...)
}

// Parse 解析 TOML 格式的词汇表
func Parse(data string, opts ...Option) (*Glossary, error) {
	var f file
	if _, err := toml.Decode(data, &f); err != nil {
		return nil, fmt.Errorf("解析词汇表失败: %w", err)
	}
	return New(f.Entries, opts...)
}

// New 由条目创建词汇表。键必须非空且唯一
func New(entries []Entry, opts ...Option) (*Glossary, error) {
	g := &Glossary{
		byKey:   make(map[string]*Entry, len(entries)),
		byName:  make(map[string]string),
		maxDist: DefaultMaxDistance,
	}
	for _, opt := range opts {
		opt(g)
	}

	var errs []error
	g.entries = make([]Entry, 0, len(entries))
	for i, e := range entries {
		e.Key = strings.TrimSpace(e.Key)
		if e.Key == "" {
			errs = append(errs, fmt.Errorf("第 %d 个条目缺少 key", i+1))
			continue
		}
		if _, dup := g.byKey[e.Key]; dup {
			errs = append(errs, fmt.Errorf("重复的 key: %q", e.Key))
			continue
		}
		if strings.TrimSpace(e.Term) == "" {
			e.Term = e.Key
		}
		g.entries = append(g.entries, e)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	for i := range g.entries {
		e := &g.entries[i]
		g.byKey[e.Key] = e
		for _, name := range append([]string{e.Term, e.Key}, e.Aliases...) {
			n := normalize(name)
			if n == "" {
				continue
			}
			// 先出现的条目优先
			if _, ok := g.byName[n]; !ok {
				g.byName[n] = e.Key
				g.names = append(g.names, n)
			}
		}
	}
	return g, nil
}

// Len 条目数量
func (g *Glossary) Len() int {
	return len(g.entries)
}

// Entries 所有条目（按文件顺序）
func (g *Glossary) Entries() []Entry {
	out := make([]Entry, len(g.entries))
	copy(out, g.entries)
	return out
}

// Entry 按键查找条目
func (g *Glossary) Entry(key string) (Entry, bool) {
	e, ok := g.byKey[key]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Resolve 实现 mui.ConceptResolver。
// 先做规范化后的精确匹配，再退回到模糊匹配，选编辑距离最小的候选。
func (g *Glossary) Resolve(term string) (string, bool) {
	n := normalize(term)
	if n == "" {
		return "", false
	}
	if key, ok := g.byName[n]; ok {
		return key, true
	}
	if g.maxDist <= 0 {
		return "", false
	}

	best, bestDist := "", g.maxDist+1
	for _, name := range g.names {
		if !fuzzy.MatchNormalizedFold(n, name) && !fuzzy.MatchNormalizedFold(name, n) {
			continue
		}
		d := fuzzy.LevenshteinDistance(n, name)
		if d < bestDist {
			best, bestDist = name, d
		}
	}
	if best == "" {
		return "", false
	}
	return g.byName[best], true
}

// normalize NFC 规范化、大小写折叠并合并空白
func normalize(s string) string {
	s = norm.NFC.String(s)
	s = cases.Fold().String(s)
	return strings.Join(strings.Fields(s), " ")
}
