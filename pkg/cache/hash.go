package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
)

// hashKey returns "kind:<sha256>" over the key fields. Fields are written
// with their Go syntax and NUL-separated, so ("a", "bc") and ("ab", "c")
// hash differently.
func hashKey(kind string, fields ...any) string {
	h := sha256.New()
	for _, f := range fields {
		fmt.Fprintf(h, "%#v", f)
		io.WriteString(h, "\x00")
	}
	return kind + ":" + hex.EncodeToString(h.Sum(nil))
}

// Hash returns the hex SHA-256 of data. FileCache uses it to lay keys out
// on disk.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
