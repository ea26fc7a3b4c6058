package formatter

import (
	"bytes"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/simplifiedchinese"
	xunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DecodeText 把输入转为 UTF-8，并统一换行符为 \n。
// 无法识别的编码按原样返回。
func DecodeText(data []byte) string {
	return normalizeNewlines(decode(data))
}

func decode(data []byte) string {
	if len(data) == 0 {
		return ""
	}

	// UTF-8 BOM
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	if utf8.Valid(data) {
		return string(data)
	}

	if len(data) >= 2 {
		var dec *encoding.Decoder
		switch {
		case data[0] == 0xFF && data[1] == 0xFE:
			dec = xunicode.UTF16(xunicode.LittleEndian, xunicode.IgnoreBOM).NewDecoder()
		case data[0] == 0xFE && data[1] == 0xFF:
			dec = xunicode.UTF16(xunicode.BigEndian, xunicode.IgnoreBOM).NewDecoder()
		}
		if dec != nil {
			if res, err := io.ReadAll(transform.NewReader(bytes.NewReader(data[2:]), dec)); err == nil && utf8.Valid(res) {
				return string(res)
			}
		}
	}

	// 常见的本地编码
	for _, enc := range []encoding.Encoding{simplifiedchinese.GB18030, charmap.Windows1252} {
		res, err := io.ReadAll(transform.NewReader(bytes.NewReader(data), enc.NewDecoder()))
		if err == nil && utf8.Valid(res) && isReasonableText(string(res)) {
			return string(res)
		}
	}
	return string(data)
}

// isReasonableText 超过 90% 为可打印字符
func isReasonableText(text string) bool {
	total, printable := 0, 0
	for _, r := range text {
		total++
		if unicode.IsPrint(r) || unicode.IsSpace(r) {
			printable++
		}
	}
	return total > 0 && float64(printable)/float64(total) > 0.9
}

func normalizeNewlines(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}
