package typegen

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/teranos/dojodts/errors"
)

// Extras locates hand-written declarations placed before and after the
// generated text of a group. Files are named
// "<prefix>_<major>.<minor>_head.d.ts" and "..._tail.d.ts"; a "/" in the
// prefix becomes ".".
type Extras struct {
	Dir     string
	Version *semver.Version
}

// NewExtras creates an extras lookup for the given documentation version
// (e.g. "1.10"). An empty dir disables extras.
func NewExtras(dir, apiVersion string) (*Extras, error) {
	v, err := semver.NewVersion(apiVersion)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid API version %q", apiVersion)
	}
	return &Extras{Dir: dir, Version: v}, nil
}

// Series returns the "major.minor" part of the version used in file names
func (x *Extras) Series() string {
	return fmt.Sprintf("%d.%d", x.Version.Major(), x.Version.Minor())
}

// Paths returns the head and tail file paths for a prefix
func (x *Extras) Paths(prefix string) (head, tail string) {
	base := filepath.Join(x.Dir, fmt.Sprintf("%s_%s", flatPrefix(prefix), x.Series()))
	return base + "_head.d.ts", base + "_tail.d.ts"
}

// Wrap surrounds text with the head and tail files for prefix, when they
// exist.
func (x *Extras) Wrap(prefix, text string) (string, error) {
	if x == nil || x.Dir == "" {
		return text, nil
	}
	headPath, tailPath := x.Paths(prefix)
	head, err := readOptional(headPath)
	if err != nil {
		return "", err
	}
	tail, err := readOptional(tailPath)
	if err != nil {
		return "", err
	}
	return head + text + tail, nil
}

func readOptional(path string) (string, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", errors.Wrapf(err, "failed to read %s", path)
	}
	return string(data), nil
}

func flatPrefix(prefix string) string {
	return strings.ReplaceAll(prefix, "/", ".")
}
