package scan

import (
	"io"
	"os"
)

// binarySampleSize is how many leading bytes the text/binary check inspects.
const binarySampleSize = 1024

// IsProbablyText reads the first 1024 bytes of the file and reports whether
// it looks like text. A null byte anywhere in the sample means binary. Any
// failure to open or read also reports binary, so unreadable content is
// never treated as processable code.
func IsProbablyText(path string) bool {
	file, err := os.Open(path)
	if err != nil {
		return false
	}
	defer file.Close()

	buf := make([]byte, binarySampleSize)
	n, err := file.Read(buf)
	if err != nil && err != io.EOF {
		return false
	}

	for i := 0; i < n; i++ {
		if buf[i] == 0 {
			return false
		}
	}

	return true
}
