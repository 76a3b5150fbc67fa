package verify

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/teranos/dojodts/errors"
)

// CheckResult holds the result of an up-to-date check
type CheckResult struct {
	UpToDate bool
	// Differences lists files whose content differs, relative to the directories
	Differences []string
	// Missing lists generated files absent from the existing directory
	Missing []string
	// Stale lists declaration files in the existing directory that are no longer generated
	Stale []string
}

// CompareDirectories compares freshly generated declarations in generatedDir
// with the ones in existingDir. Lines starting with "// Generated" are
// ignored so that timestamps do not count as changes.
func CompareDirectories(generatedDir, existingDir string) (*CheckResult, error) {
	generated, err := declarationFiles(generatedDir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list %s", generatedDir)
	}
	existing, err := declarationFiles(existingDir)
	if err != nil && !os.IsNotExist(errors.UnwrapAll(err)) {
		return nil, errors.Wrapf(err, "failed to list %s", existingDir)
	}

	result := &CheckResult{}
	inGenerated := make(map[string]bool, len(generated))
	for _, rel := range generated {
		inGenerated[rel] = true

		existingPath := filepath.Join(existingDir, rel)
		if _, err := os.Stat(existingPath); os.IsNotExist(err) {
			result.Missing = append(result.Missing, rel)
			continue
		}

		different, err := filesAreDifferent(filepath.Join(generatedDir, rel), existingPath)
		if err != nil {
			result.Differences = append(result.Differences, rel+" (error: "+err.Error()+")")
		} else if different {
			result.Differences = append(result.Differences, rel)
		}
	}
	for _, rel := range existing {
		if !inGenerated[rel] {
			result.Stale = append(result.Stale, rel)
		}
	}

	result.UpToDate = len(result.Differences) == 0 && len(result.Missing) == 0 && len(result.Stale) == 0
	return result, nil
}

// declarationFiles returns the sorted relative paths of .d.ts files under dir
func declarationFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		if !strings.HasSuffix(path, ".d.ts") {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		files = append(files, rel)
		return nil
	})
	sort.Strings(files)
	return files, err
}

// filesAreDifferent compares two files, ignoring generation metadata lines.
func filesAreDifferent(file1, file2 string) (bool, error) {
	content1, err := os.ReadFile(file1)
	if err != nil {
		return false, errors.Wrapf(err, "failed to read %s", file1)
	}
	content2, err := os.ReadFile(file2)
	if err != nil {
		return false, errors.Wrapf(err, "failed to read %s", file2)
	}
	if bytes.Equal(content1, content2) {
		return false, nil
	}
	filtered1, err := filterMetadataLines(content1)
	if err != nil {
		return false, errors.Wrapf(err, "failed to scan %s", file1)
	}
	filtered2, err := filterMetadataLines(content2)
	if err != nil {
		return false, errors.Wrapf(err, "failed to scan %s", file2)
	}
	return filtered1 != filtered2, nil
}

// filterMetadataLines removes "// Generated" comment lines from content.
func filterMetadataLines(content []byte) (string, error) {
	var result strings.Builder
	scanner := bufio.NewScanner(bytes.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "// Generated") {
			continue
		}
		result.WriteString(line)
		result.WriteString("\n")
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return result.String(), nil
}
