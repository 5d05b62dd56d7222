package ir

import (
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// Data string prefixes.
const (
	PrefixUTF8   = "utf8:"
	PrefixBase64 = "base64:"
)

// OutFormat selects how captured serial output is rendered in the report.
type OutFormat uint8

const (
	OutNone OutFormat = iota
	OutBase64
	OutUTF8
)

func (f OutFormat) String() string {
	switch f {
	case OutBase64:
		return "base64"
	case OutUTF8:
		return "utf8"
	default:
		return "none"
	}
}

// ParseOutFormat accepts the job spellings "utf8" and "base64".
func ParseOutFormat(s string) (OutFormat, error) {
	switch s {
	case "utf8":
		return OutUTF8, nil
	case "base64":
		return OutBase64, nil
	}
	return OutNone, fmt.Errorf("unknown serial_out_fmt %q", s)
}

// DecodeData turns a prefixed data string into bytes. A "utf8:" payload is
// taken as its UTF-8 encoding; a "base64:" payload is standard padded base64.
func DecodeData(s string) ([]byte, error) {
	switch {
	case strings.HasPrefix(s, PrefixUTF8):
		return []byte(s[len(PrefixUTF8):]), nil
	case strings.HasPrefix(s, PrefixBase64):
		b, err := base64.StdEncoding.DecodeString(s[len(PrefixBase64):])
		if err != nil {
			return nil, fmt.Errorf("base64 data: %w", err)
		}
		return b, nil
	}
	return nil, fmt.Errorf("unknown data format %q", truncate(s, 16))
}

// EncodeData renders bytes with the prefix for format f. Invalid UTF-8
// sequences become U+FFFD under OutUTF8. OutNone returns "".
func EncodeData(f OutFormat, data []byte) string {
	switch f {
	case OutBase64:
		return PrefixBase64 + base64.StdEncoding.EncodeToString(data)
	case OutUTF8:
		text, err := unicode.UTF8.NewDecoder().Bytes(data)
		if err != nil {
			// The UTF-8 decoder replaces rather than fails; keep the raw
			// bytes if that ever changes.
			text = data
		}
		return PrefixUTF8 + string(text)
	}
	return ""
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
