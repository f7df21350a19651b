package java

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// ReadmeFile is the vendor readme some distributions ship at the install root
const ReadmeFile = "readme.txt"

// HasBundledFX reports whether the install tree carries JavaFX, either as the
// legacy jre/lib/ext/jfxrt.jar or as javafx modules in jmods
func HasBundledFX(root string) bool {
	if containsFile(filepath.Join(root, "jre", "lib", "ext"), func(name string) bool {
		return strings.EqualFold(name, "jfxrt.jar")
	}) {
		return true
	}
	return containsFile(filepath.Join(root, "jmods"), func(name string) bool {
		return strings.HasPrefix(name, "javafx")
	})
}

// containsFile reports whether dir holds a regular file whose name satisfies match
func containsFile(dir string, match func(string) bool) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if match(entry.Name()) {
			return true
		}
	}
	return false
}

// ReadSupplementalNotes returns the lines of the readme below root. The second
// result is false when no readme exists or it cannot be read.
func ReadSupplementalNotes(root string) ([]string, bool) {
	f, err := os.Open(filepath.Join(root, ReadmeFile))
	if err != nil {
		return nil, false
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, false
	}
	return lines, true
}
