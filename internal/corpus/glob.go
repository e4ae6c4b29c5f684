package corpus

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/FocuswithJustin/havarot/core/errors"
)

// ExpandGlobs resolves doublestar patterns into a sorted, deduplicated
// list of existing files. Literal paths must exist; a pattern that
// matches no files is an error naming the pattern.
func ExpandGlobs(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	for _, pattern := range patterns {
		matches, err := expandPattern(pattern)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}

	sort.Strings(files)
	return files, nil
}

func expandPattern(pattern string) ([]string, error) {
	if !strings.ContainsAny(pattern, "*?[{") {
		info, err := os.Stat(pattern)
		if err != nil {
			return nil, errors.NewIO("stat", pattern, err)
		}
		if info.IsDir() {
			return nil, errors.NewValidation("pattern",
				fmt.Sprintf("%s is a directory, not a corpus file", pattern))
		}
		return []string{pattern}, nil
	}

	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, errors.NewValidation("pattern",
			fmt.Sprintf("bad glob %q: %v", pattern, err))
	}

	var files []string
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || info.IsDir() {
			continue
		}
		files = append(files, m)
	}
	if len(files) == 0 {
		return nil, errors.NewNotFound("corpus file", pattern)
	}
	return files, nil
}
