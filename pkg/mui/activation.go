package mui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// 用户与组件交互时产生的激活值，等同于用户在对话中输入该文本。
// 传输由外层负责，这里只计算值。

const (
	NoneSelected   = "none selected"
	NoDateSelected = "no date selected"
	dateLayout     = "2006-01-02"
)

// ErrInvalidActivation 交互输入不合法
var ErrInvalidActivation = errors.New("invalid activation")

// Interactive 会产生激活值的组件
type Interactive interface {
	Component
	ElementID() string
}

// Defaulter 未经操作直接提交时也有激活值的组件
type Defaulter interface {
	Interactive
	DefaultActivation() string
}

// Reentry 把激活值作为新的用户消息送回对话，由会话层实现
type Reentry interface {
	Submit(ctx context.Context, value string) error
}

func (c *Buttons) ElementID() string    { return c.ID }
func (c *Checkboxes) ElementID() string { return c.ID }
func (c *Slider) ElementID() string     { return c.ID }
func (c *Rating) ElementID() string     { return c.ID }
func (c *Toggle) ElementID() string     { return c.ID }
func (c *DatePicker) ElementID() string { return c.ID }

// Choose 点击第 i 个按钮
func (c *Buttons) Choose(i int) (string, error) {
	if i < 0 || i >= len(c.Options) {
		return "", fmt.Errorf("%w: button %d out of range [0,%d)", ErrInvalidActivation, i, len(c.Options))
	}
	return c.Options[i].Value, nil
}

// Submit 提交勾选项，未勾选时返回 NoneSelected
func (c *Checkboxes) Submit(checked ...int) (string, error) {
	if len(checked) == 0 {
		return NoneSelected, nil
	}
	values := make([]string, 0, len(checked))
	for _, i := range checked {
		if i < 0 || i >= len(c.Options) {
			return "", fmt.Errorf("%w: checkbox %d out of range [0,%d)", ErrInvalidActivation, i, len(c.Options))
		}
		values = append(values, c.Options[i].Value)
	}
	return strings.Join(values, ", "), nil
}

// DefaultActivation 未勾选任何项时提交的值
func (c *Checkboxes) DefaultActivation() string {
	return NoneSelected
}

// Submit 提交滑块值
func (c *Slider) Submit(v int) (string, error) {
	if v < c.Min || v > c.Max {
		return "", fmt.Errorf("%w: slider value %d outside [%d,%d]", ErrInvalidActivation, v, c.Min, c.Max)
	}
	return strconv.Itoa(v), nil
}

// DefaultActivation 未拖动时提交的值
func (c *Slider) DefaultActivation() string {
	return strconv.Itoa(c.Value)
}

// Submit 提交评分，0 表示未选择
func (c *Rating) Submit(stars int) (string, error) {
	if stars < 0 || stars > c.Max {
		return "", fmt.Errorf("%w: rating %d outside [0,%d]", ErrInvalidActivation, stars, c.Max)
	}
	return strconv.Itoa(stars), nil
}

// DefaultActivation 未选择星级时提交的值
func (c *Rating) DefaultActivation() string {
	return "0"
}

// Submit 提交开关状态
func (c *Toggle) Submit(on bool) (string, error) {
	if on {
		return "yes", nil
	}
	return "no", nil
}

// DefaultActivation 保持初始状态直接提交
func (c *Toggle) DefaultActivation() string {
	v, _ := c.Submit(c.Checked)
	return v
}

// Submit 提交 ISO 日期，空字符串返回 NoDateSelected
func (c *DatePicker) Submit(date string) (string, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return NoDateSelected, nil
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return "", fmt.Errorf("%w: %q is not an ISO date", ErrInvalidActivation, date)
	}
	// ISO 日期可以直接按字符串比较
	if c.Min != "" && date < c.Min {
		return "", fmt.Errorf("%w: %s is before %s", ErrInvalidActivation, date, c.Min)
	}
	if c.Max != "" && date > c.Max {
		return "", fmt.Errorf("%w: %s is after %s", ErrInvalidActivation, date, c.Max)
	}
	return date, nil
}

// DefaultActivation 保持初始值直接提交
func (c *DatePicker) DefaultActivation() string {
	if c.Value == "" {
		return NoDateSelected
	}
	return c.Value
}
