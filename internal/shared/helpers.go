// Package shared provides common utility functions used across multiple
// packages in the virsat-catia codebase.
package shared

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// CopyFile copies src to dst, replacing dst if it exists. The parent
// directory of dst must exist. Copying a file onto itself is a no-op.
func CopyFile(src string, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	srcInfo, err := in.Stat()
	if err != nil {
		return err
	}
	if dstInfo, err := os.Stat(dst); err == nil && os.SameFile(srcInfo, dstInfo) {
		return nil
	}

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// BaseName returns the file name of path, or an error when path does not
// name a file.
func BaseName(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("empty path")
	}
	name := filepath.Base(trimmed)
	if name == "." || name == ".." || name == string(filepath.Separator) {
		return "", fmt.Errorf("path %q does not name a file", path)
	}
	return name, nil
}

// ParseMappings turns "document-uuid=element-uuid" pairs into a map.
func ParseMappings(pairs []string) (map[string]string, error) {
	out := map[string]string{}
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if !ok || key == "" || value == "" {
			return nil, fmt.Errorf("invalid mapping %q, expected <document-uuid>=<element-uuid>", pair)
		}
		out[key] = value
	}
	return out, nil
}
