package utils

import (
	"bytes"
	"io"

	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

// DecodeGBK converts GBK-encoded bytes to a UTF-8 string.
func DecodeGBK(data []byte) (string, error) {
	reader := transform.NewReader(bytes.NewReader(data), simplifiedchinese.GBK.NewDecoder())
	decoded, err := io.ReadAll(reader)
	if err != nil {
		return string(data), err
	}
	return string(decoded), nil
}

// TryDecodeConsole returns tool output as UTF-8. Windows console tools emit
// the OEM codepage on localized systems; when the raw bytes look garbled a
// GBK decode is attempted, otherwise the string passes through unchanged.
func TryDecodeConsole(data []byte) string {
	str := string(data)
	if !containsGarbledChars(str) {
		return str
	}
	decoded, err := DecodeGBK(data)
	if err != nil {
		return str
	}
	return decoded
}

func containsGarbledChars(s string) bool {
	for _, r := range s {
		// U+FFFD marks a failed decode
		if r == '�' {
			return true
		}
		if r > 127 && r < 256 {
			return true
		}
	}
	return false
}
