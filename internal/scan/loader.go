package scan

import (
	"io"
	"os"
	"strings"
)

// ReadFileText returns the file content as text with invalid UTF-8 sequences
// dropped. Any open or read failure yields empty content; the loader never
// reports an error, a file that cannot be read simply scans as empty.
func ReadFileText(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.ToValidUTF8(string(data), "")
}

// readTextHead returns up to maxChars characters of decoded text from the
// start of the file. The second result is false when the file cannot be
// read. Invalid UTF-8 sequences are dropped the same way ReadFileText drops
// them.
func readTextHead(path string, maxChars int) (string, bool) {
	file, err := os.Open(path)
	if err != nil {
		return "", false
	}
	defer file.Close()

	// A character can occupy up to four bytes, so sample enough bytes to
	// cover maxChars characters in the worst case.
	buf := make([]byte, maxChars*4)
	n, err := file.Read(buf)
	if err != nil && err != io.EOF {
		return "", false
	}

	head := strings.ToValidUTF8(string(buf[:n]), "")
	runes := []rune(head)
	if len(runes) > maxChars {
		runes = runes[:maxChars]
	}
	return string(runes), true
}
