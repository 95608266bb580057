package scan

import (
	"io/fs"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Extensions accepted by the pipeline. Anything else is skipped without
// comment during the walk.
var acceptedExtensions = map[string]bool{
	"csv": true,
	"pdf": true,
	"xml": true,
}

const compressionSuffix = "gz"

// Item describes one accepted file. Immutable once emitted.
type Item struct {
	Path       string
	Name       string
	Extension  string
	Compressed bool
}

// Scan walks root and returns the accepted files in walk order.
// filepath.WalkDir visits entries in lexical order at every level, so an
// unchanged tree always yields the same sequence. The full slice is
// materialized up front because its length drives worker sizing.
func Scan(root string, logger *zap.Logger) ([]Item, error) {
	var items []Item

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		extension, compressed, ok := splitExtension(d.Name())
		if !ok {
			logger.Debug("skipping unrecognized file", zap.String("path", path))
			return nil
		}

		items = append(items, Item{
			Path:       path,
			Name:       d.Name(),
			Extension:  extension,
			Compressed: compressed,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("scan complete", zap.String("root", root), zap.Int("files", len(items)))
	return items, nil
}

// splitExtension extracts the format extension from a filename,
// unwrapping one compression suffix if present. Extensions compare
// lower-cased.
func splitExtension(name string) (extension string, compressed bool, ok bool) {
	parts := strings.Split(strings.ToLower(name), ".")
	extension = parts[len(parts)-1]
	if extension == compressionSuffix && len(parts) > 1 {
		extension = parts[len(parts)-2]
		compressed = true
	}
	return extension, compressed, acceptedExtensions[extension]
}
