package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"pediacenter/pkg/model"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileCatalog reads a schedule document on every call, so edits take effect
// without a restart. The format follows the file extension: .toml is TOML,
// anything else JSON.
type FileCatalog struct {
	path string
}

func NewFileCatalog(path string) *FileCatalog {
	return &FileCatalog{path: path}
}

func (c *FileCatalog) RecurringSlotsFor(ctx context.Context, provider string) ([]model.ProviderTemplate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := c.read()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}
	return filterByProvider(doc.Providers, provider), nil
}

func (c *FileCatalog) read() (*model.ScheduleFile, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", c.path, err)
	}

	var doc model.ScheduleFile
	switch strings.ToLower(filepath.Ext(c.path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), &doc); err != nil {
			return nil, fmt.Errorf("decode %s: %w", c.path, err)
		}
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode %s: %w", c.path, err)
		}
	}
	return &doc, nil
}
