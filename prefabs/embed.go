package prefabs

import (
	"embed"
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed *.yaml
var PrefabsFS embed.FS

// DiskDir is checked before the embedded files so prefabs can be edited
// without rebuilding. Empty disables the disk lookup.
var DiskDir = "prefabs"

// Load reads a prefab by file name, preferring a copy under DiskDir.
func Load(name string) ([]byte, error) {
	clean := cleanPrefabPath(name)
	if clean == "" {
		return nil, fs.ErrNotExist
	}
	if DiskDir != "" {
		data, err := os.ReadFile(filepath.Join(DiskDir, filepath.FromSlash(clean)))
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return PrefabsFS.ReadFile(clean)
}

// Names lists the embedded prefab files.
func Names() ([]string, error) {
	entries, err := fs.Glob(PrefabsFS, "*.yaml")
	if err != nil {
		return nil, err
	}
	sort.Strings(entries)
	return entries, nil
}

// cleanPrefabPath maps "prefabs/x.yaml", "./x.yaml" and "x.yaml" to "x.yaml".
func cleanPrefabPath(p string) string {
	if p == "" {
		return ""
	}
	s := path.Clean(filepath.ToSlash(p))
	s = strings.TrimPrefix(s, "prefabs/")
	if s == "." {
		return ""
	}
	return s
}
