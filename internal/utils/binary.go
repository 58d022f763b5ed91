package utils

import "unicode/utf8"

// IsBinary reports whether the provided byte slice appears to contain binary
// data. A zero byte or invalid UTF-8 marks the content as binary; empty input
// counts as text.
func IsBinary(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	for _, byteValue := range data {
		if byteValue == 0 {
			return true
		}
	}
	return !utf8.Valid(data)
}
