package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// rotateFiles shifts numbered backups up by one (app.log.1 -> app.log.2),
// drops any beyond maxBackups and moves the current file to .1.
func rotateFiles(basePath string, maxBackups int) error {
	dir := filepath.Dir(basePath)
	ext := filepath.Ext(basePath)
	name := strings.TrimSuffix(filepath.Base(basePath), ext)

	backups, err := findBackups(dir, name, ext)
	if err != nil {
		return err
	}
	sort.Sort(sort.Reverse(sort.IntSlice(backups)))

	for _, num := range backups {
		oldPath := filepath.Join(dir, fmt.Sprintf("%s.%d%s", name, num, ext))
		if num >= maxBackups {
			os.Remove(oldPath)
			continue
		}
		newPath := filepath.Join(dir, fmt.Sprintf("%s.%d%s", name, num+1, ext))
		if err := os.Rename(oldPath, newPath); err != nil {
			return fmt.Errorf("failed to rotate %s: %w", oldPath, err)
		}
	}

	if _, err := os.Stat(basePath); err == nil {
		if err := os.Rename(basePath, filepath.Join(dir, name+".1"+ext)); err != nil {
			return fmt.Errorf("failed to rotate current log: %w", err)
		}
	}

	return nil
}

func findBackups(dir, name, ext string) ([]int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var backups []int
	prefix := name + "."
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		fname := entry.Name()
		if !strings.HasPrefix(fname, prefix) || !strings.HasSuffix(fname, ext) {
			continue
		}
		num, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(fname, prefix), ext))
		if err != nil {
			continue
		}
		backups = append(backups, num)
	}

	return backups, nil
}
