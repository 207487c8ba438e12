// Package levels embeds the built-in level maps
package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

//go:embed *.json
var files embed.FS

// Default is the classic twenty-cave dodecahedron
const Default = "01"

// Names lists the built-in levels in order
func Names() []string {
	entries, err := fs.Glob(files, "*.json")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e, ".json"))
	}
	sort.Strings(names)
	return names
}

// Read returns the raw level map of a built-in level
func Read(name string) ([]byte, error) {
	data, err := files.ReadFile(name + ".json")
	if err != nil {
		return nil, fmt.Errorf("level %q: %w", name, fs.ErrNotExist)
	}
	return data, nil
}
