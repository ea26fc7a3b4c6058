package mui

// Component 交互组件描述。该接口是封闭的：只有本包内的类型可以实现，
// 新增变体时必须同时扩展 Visitor，所有访问者都会在编译期报错。
type Component interface {
	OutputItem
	// Type 组件类型名（与 <mui type="..."> 对应）
	Type() string
	// Accept 分派到 Visitor 中对应的方法
	Accept(v Visitor)
	isComponent()
}

// Visitor 组件的穷举访问者
type Visitor interface {
	VisitButtons(*Buttons)
	VisitCheckboxes(*Checkboxes)
	VisitSlider(*Slider)
	VisitRating(*Rating)
	VisitToggle(*Toggle)
	VisitImage(*Image)
	VisitVideo(*Video)
	VisitDatePicker(*DatePicker)
	VisitGrid(*Grid)
	VisitStat(*Stat)
	VisitTable(*Table)
	VisitTabs(*Tabs)
	VisitAccordion(*Accordion)
	VisitCard(*Card)
	VisitDiagnostic(*Diagnostic)
	VisitEmpty(*Empty)
}

type sealed struct{}

func (sealed) isComponent()  {}
func (sealed) isOutputItem() {}

// Buttons 按钮组
type Buttons struct {
	sealed
	ID      string   `json:"id"`
	Options []Option `json:"options"`
}

func (*Buttons) Type() string       { return "buttons" }
func (c *Buttons) Accept(v Visitor) { v.VisitButtons(c) }

// Checkboxes 多选框组
type Checkboxes struct {
	sealed
	ID      string   `json:"id"`
	Label   string   `json:"label,omitempty"`
	Options []Option `json:"options"`
}

func (*Checkboxes) Type() string       { return "checkboxes" }
func (c *Checkboxes) Accept(v Visitor) { v.VisitCheckboxes(c) }

// Slider 滑块
type Slider struct {
	sealed
	ID    string `json:"id"`
	Label string `json:"label,omitempty"`
	Min   int    `json:"min"`
	Max   int    `json:"max"`
	Step  int    `json:"step"`
	Value int    `json:"value"`
	// Ticks 刻度，约 10 个
	Ticks []int `json:"ticks"`
}

func (*Slider) Type() string       { return "slider" }
func (c *Slider) Accept(v Visitor) { v.VisitSlider(c) }

// Rating 星级评分
type Rating struct {
	sealed
	ID    string `json:"id"`
	Label string `json:"label,omitempty"`
	Max   int    `json:"max"`
}

func (*Rating) Type() string       { return "rating" }
func (c *Rating) Accept(v Visitor) { v.VisitRating(c) }

// Toggle 开关
type Toggle struct {
	sealed
	ID      string `json:"id"`
	Label   string `json:"label,omitempty"`
	Checked bool   `json:"checked"`
}

func (*Toggle) Type() string       { return "toggle" }
func (c *Toggle) Accept(v Visitor) { v.VisitToggle(c) }

// Image 图片
type Image struct {
	sealed
	Src     string `json:"src"`
	Alt     string `json:"alt"`
	Caption string `json:"caption,omitempty"`
}

func (*Image) Type() string       { return "image" }
func (c *Image) Accept(v Visitor) { v.VisitImage(c) }

// Video YouTube 视频
type Video struct {
	sealed
	URL      string `json:"url"`
	VideoID  string `json:"video_id"`
	EmbedURL string `json:"embed_url"`
	Caption  string `json:"caption,omitempty"`
}

func (*Video) Type() string       { return "video" }
func (c *Video) Accept(v Visitor) { v.VisitVideo(c) }

// DatePicker 日期选择
type DatePicker struct {
	sealed
	ID    string `json:"id"`
	Label string `json:"label,omitempty"`
	Min   string `json:"min,omitempty"`
	Max   string `json:"max,omitempty"`
	Value string `json:"value,omitempty"`
}

func (*DatePicker) Type() string       { return "date" }
func (c *DatePicker) Accept(v Visitor) { v.VisitDatePicker(c) }

// Grid 网格布局，Cells 为已渲染的 HTML
type Grid struct {
	sealed
	Cols   int      `json:"cols"`
	ColsSm int      `json:"cols_sm,omitempty"`
	ColsMd int      `json:"cols_md,omitempty"`
	ColsLg int      `json:"cols_lg,omitempty"`
	ColsXl int      `json:"cols_xl,omitempty"`
	Gap    string   `json:"gap"`
	Cells  []string `json:"cells"`
}

func (*Grid) Type() string       { return "grid" }
func (c *Grid) Accept(v Visitor) { v.VisitGrid(c) }

// Stat 指标卡
type Stat struct {
	sealed
	Label string `json:"label"`
	Value string `json:"value"`
	Desc  string `json:"desc,omitempty"`
}

func (*Stat) Type() string       { return "stat" }
func (c *Stat) Accept(v Visitor) { v.VisitStat(c) }

// Table 表格，单元格为已渲染的 HTML
type Table struct {
	sealed
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

func (*Table) Type() string       { return "table" }
func (c *Table) Accept(v Visitor) { v.VisitTable(c) }

// Tab 单个标签页
type Tab struct {
	Label string `json:"label"`
	Body  string `json:"body"`
}

// Tabs 标签页组，默认激活第一个
type Tabs struct {
	sealed
	ID     string `json:"id"`
	Tabs   []Tab  `json:"tabs"`
	Active int    `json:"active"`
}

func (*Tabs) Type() string       { return "tabs" }
func (c *Tabs) Accept(v Visitor) { v.VisitTabs(c) }

// AccordionItem 折叠面板项
type AccordionItem struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Open  bool   `json:"open"`
}

// Accordion 折叠面板
type Accordion struct {
	sealed
	Items []AccordionItem `json:"items"`
}

func (*Accordion) Type() string       { return "accordion" }
func (c *Accordion) Accept(v Visitor) { v.VisitAccordion(c) }

// Card 卡片，可以内嵌一组按钮
type Card struct {
	sealed
	Title   string   `json:"title,omitempty"`
	Body    string   `json:"body,omitempty"`
	Buttons *Buttons `json:"buttons,omitempty"`
}

func (*Card) Type() string       { return "card" }
func (c *Card) Accept(v Visitor) { v.VisitCard(c) }

// Diagnostic 标签格式错误时的占位组件，内联显示而不中断渲染
type Diagnostic struct {
	sealed
	// Component 出错的组件类型
	Component string `json:"component"`
	Message   string `json:"message"`
	// Expected 期望的格式示例，可为空
	Expected string `json:"expected,omitempty"`
	// Received 截断后的原始内容
	Received string `json:"received,omitempty"`
}

func (*Diagnostic) Type() string       { return "diagnostic" }
func (c *Diagnostic) Accept(v Visitor) { v.VisitDiagnostic(c) }

// Empty 未知类型对应的空组件
type Empty struct {
	sealed
	TagType string `json:"tag_type"`
}

func (*Empty) Type() string       { return "empty" }
func (c *Empty) Accept(v Visitor) { v.VisitEmpty(c) }
