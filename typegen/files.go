package typegen

import (
	"context"
	"os"
	"path/filepath"

	"github.com/teranos/dojodts/api"
	"github.com/teranos/dojodts/errors"
	"github.com/teranos/dojodts/logger"
)

// File is one generated declaration file.
type File struct {
	Name     string
	Prefix   string
	Content  string
	Entities int
}

// Files synthesizes one file per group of coll. Extras may be nil.
func (g *Generator) Files(ctx context.Context, coll *api.Collection, prefixes []string, extras *Extras) ([]File, *Report, error) {
	report := newReport()
	var files []File

	for _, group := range Groups(coll, prefixes) {
		text, r, err := g.Synthesize(ctx, group.Entities)
		report.Merge(r)
		if err != nil {
			return nil, report, errors.Wrapf(err, "group %s", group.Prefix)
		}
		content, err := extras.Wrap(group.Prefix, text)
		if err != nil {
			return nil, report, err
		}
		files = append(files, File{
			Name:     group.FileName(),
			Prefix:   group.Prefix,
			Content:  g.banner + content,
			Entities: group.Entities.Len(),
		})
		g.log.Debugw("Processed group",
			logger.FieldPrefix, group.Prefix,
			logger.FieldCount, group.Entities.Len(),
			logger.FieldSize, len(content))
	}
	return files, report, nil
}

// WriteFiles writes files into dir, creating it if needed.
func WriteFiles(dir string, files []File) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "failed to create output directory %s", dir)
	}
	for _, f := range files {
		path := filepath.Join(dir, f.Name)
		if err := os.WriteFile(path, []byte(f.Content), 0644); err != nil {
			return errors.Wrapf(err, "failed to write %s", f.Name)
		}
	}
	return nil
}
