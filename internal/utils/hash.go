package utils

import (
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
)

// HashFile computes the xxhash-64 digest of a file, hex-encoded. Used for
// the optional ISO integrity check; xxhash is fast enough to run over a
// multi-gigabyte image without dominating the build.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := xxhash.New()
	buf := GetLargeBuffer()
	defer PutLargeBuffer(buf)

	if _, err := io.CopyBuffer(h, f, *buf); err != nil {
		return "", err
	}
	return fmt.Sprintf("%016x", h.Sum64()), nil
}
