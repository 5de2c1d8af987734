package scenario

import (
	"fmt"
	"io/fs"
	"linktree/util"
	"os"
	"path/filepath"
	"sort"
)

// LoadDirectory parses every script under root accepted by filter, ordered by path.
func LoadDirectory(root string, filter *util.PathFilter) ([]*Script, error) {
	var scripts []*Script
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.Type().IsRegular() {
			return nil
		}
		relativePath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		relativePath = filepath.ToSlash(relativePath)
		if !filter.Match(relativePath) {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read script at '%v': %v", path, err)
		}
		script, err := Parse(relativePath, content)
		if err != nil {
			return err
		}
		scripts = append(scripts, script)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(scripts, func(i, j int) bool {
		return scripts[i].Name < scripts[j].Name
	})
	return scripts, nil
}
