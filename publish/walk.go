package publish

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ListMarkdownFiles returns every *.md file below inFolder, recursively, except the ones whose bare
// file name is listed in exclude.  Matching is exact and case-sensitive.
func ListMarkdownFiles(inFolder string, exclude []string) ([]string, error) {
	stat, err := os.Stat(inFolder)
	if err != nil {
		return nil, fmt.Errorf("publish: couldn't open input directory %s: %w", inFolder, err)
	}
	if !stat.IsDir() {
		return nil, fmt.Errorf("publish: input directory is not a directory: '%s'", inFolder)
	}

	skip := make(map[string]struct{}, len(exclude))
	for _, name := range exclude {
		skip[name] = struct{}{}
	}

	filenames := []string{}

	err = filepath.WalkDir(inFolder,
		func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return fmt.Errorf("publish: error during file tree walk: %w", err)
			}
			if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
				return nil
			}
			if _, ok := skip[d.Name()]; ok {
				return nil
			}
			filenames = append(filenames, path)
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("publish: error walking %s: %w", inFolder, err)
	}

	return filenames, nil
}
