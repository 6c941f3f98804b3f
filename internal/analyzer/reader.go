package analyzer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
)

// Supported source encodings (project.encoding)
const (
	EncodingAuto  = "auto"
	EncodingUTF8  = "utf-8"
	EncodingEUCKR = "euc-kr"
)

// ReadSource reads a file with encoding detection and returns UTF-8 bytes.
// In auto mode invalid UTF-8 is decoded as EUC-KR/CP949, which legacy
// Korean Spring projects still ship. Comments are preserved: the parsers
// need the original offsets.
func ReadSource(path, encoding string) ([]byte, error) {
	rawBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	switch strings.ToLower(encoding) {
	case EncodingUTF8:
		return rawBytes, nil
	case EncodingEUCKR, "cp949", "ms949":
		return decodeEUCKR(rawBytes), nil
	}

	if utf8.Valid(rawBytes) {
		return rawBytes, nil
	}
	return decodeEUCKR(rawBytes), nil
}

func decodeEUCKR(rawBytes []byte) []byte {
	decoded, _, err := transform.Bytes(korean.EUCKR.NewDecoder(), rawBytes)
	if err != nil {
		// If EUC-KR fails, fall back to original (might be corrupted)
		return rawBytes
	}
	return decoded
}

// IsJavaFile checks if a file is a Java source file
func IsJavaFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".java")
}
