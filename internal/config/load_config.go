package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/xi2/xz" // For reading .xz compressed config documents
	"gopkg.in/yaml.v3"

	"install-tree/internal/logger"
)

var (
	// ErrConfigNotFound is returned when the config path does not exist.
	ErrConfigNotFound = errors.New("config file not found")
	// ErrConfigParse is returned when the document is not valid YAML of the expected shape.
	ErrConfigParse = errors.New("config file is malformed")
	// ErrMissingOSSubtree is returned when installation.tree has no branch for the platform.
	ErrMissingOSSubtree = errors.New("no configuration for platform")
)

// Load reads and decodes the installation config at path. Files ending in
// .xz are decompressed first.
func Load(path string) (*Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrConfigNotFound, path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	logger.Debug("[DEBUG] Read %d bytes from %s\n", len(raw), path)

	if strings.HasSuffix(strings.ToLower(path), ".xz") {
		raw, err = decompressXZ(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, path, err)
		}
		logger.Debug("[DEBUG] Decompressed %s to %d bytes\n", path, len(raw))
	}

	doc, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	doc.Path = path
	return doc, nil
}

// Parse decodes an in-memory config document.
func Parse(raw []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	return &doc, nil
}

func decompressXZ(raw []byte) ([]byte, error) {
	r, err := xz.NewReader(bytes.NewReader(raw), 0)
	if err != nil {
		return nil, fmt.Errorf("xz reader: %w", err)
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("xz decompress: %w", err)
	}
	return out, nil
}
