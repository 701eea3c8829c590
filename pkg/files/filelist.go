package files

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LoadFileList reads a file containing one path per line, skipping blank
// lines. The list file itself may be compressed.
func LoadFileList(path string) ([]string, error) {
	r, err := OptionallyCompressedReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return readFileList(r)
}

// LoadFileListRelativeTo reads a file list and resolves each relative entry
// against basePath.
func LoadFileListRelativeTo(path, basePath string) ([]string, error) {
	entries, err := LoadFileList(path)
	if err != nil {
		return nil, err
	}
	for i, entry := range entries {
		if !filepath.IsAbs(entry) {
			entries[i] = filepath.Join(basePath, entry)
		}
	}
	return entries, nil
}

func readFileList(r io.Reader) ([]string, error) {
	var entries []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		entries = append(entries, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read file list: %w", err)
	}
	return entries, nil
}

// WriteFileList writes one path per line to path.
func WriteFileList(entries []string, path string) error {
	var sb strings.Builder
	for _, entry := range entries {
		sb.WriteString(entry)
		sb.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("write file list: %w", err)
	}
	return nil
}
