package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// rotateFiles shifts name.N.ext to name.N+1.ext, drops backups beyond
// maxBackups and moves the live file to name.1.ext.
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
		oldPath := backupPath(dir, name, ext, num)
		if num >= maxBackups {
			os.Remove(oldPath)
			continue
		}
		if err := os.Rename(oldPath, backupPath(dir, name, ext, num+1)); err != nil {
			return fmt.Errorf("failed to rotate %s: %w", oldPath, err)
		}
	}

	if _, err := os.Stat(basePath); err == nil {
		if err := os.Rename(basePath, backupPath(dir, name, ext, 1)); err != nil {
			return fmt.Errorf("failed to rotate current log: %w", err)
		}
	}
	return nil
}

func backupPath(dir, name, ext string, num int) string {
	return filepath.Join(dir, fmt.Sprintf("%s.%d%s", name, num, ext))
}

func findBackups(dir, name, ext string) ([]int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	prefix := name + "."
	var backups []int
	for _, entry := range entries {
		fname := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(fname, prefix) || !strings.HasSuffix(fname, ext) {
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
