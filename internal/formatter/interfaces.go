package formatter

// Formatter 格式化器接口
type Formatter interface {
	// Format 格式化内容
	Format(content []byte) ([]byte, error)

	// Name 返回格式化器名称
	Name() string
}

// FormatError 格式化错误
type FormatError struct {
	Formatter string
	Reason    string
	Err       error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return e.Formatter + ": " + e.Reason + ": " + e.Err.Error()
	}
	return e.Formatter + ": " + e.Reason
}

// Unwrap 返回底层错误
func (e *FormatError) Unwrap() error {
	return e.Err
}
