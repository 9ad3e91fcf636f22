package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	internalErrors "github.com/resumematcher/resume-search/internal/errors"
	"github.com/resumematcher/resume-search/internal/logger"
	"github.com/resumematcher/resume-search/model"
)

// DefaultExtensions lists the file extensions read as documents by default.
var DefaultExtensions = []string{".txt"}

const defaultConcurrency = 8

// DirectoryReader reads every file with a recognized extension from a corpus
// directory. It fulfills the services.DocumentSource interface.
type DirectoryReader struct {
	Extensions  []string
	Concurrency int
}

// NewDirectoryReader creates a DirectoryReader, falling back to defaults for
// empty extensions or a non-positive concurrency.
func NewDirectoryReader(extensions []string, concurrency int) *DirectoryReader {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &DirectoryReader{Extensions: extensions, Concurrency: concurrency}
}

// ReadDirectory returns the documents of dir in filename order, with the number
// of eligible files that could not be read. A missing or unreadable directory
// is reported as a *LoadError. Individual unreadable files are skipped, and
// invalid UTF-8 sequences are dropped from file contents.
func (r *DirectoryReader) ReadDirectory(ctx context.Context, dir string) ([]model.Document, int, error) {
	log := logger.WithComponent("store")

	info, err := os.Stat(dir)
	if err != nil {
		return nil, 0, internalErrors.NewLoadError(dir, err)
	}
	if !info.IsDir() {
		return nil, 0, internalErrors.NewLoadError(dir, fmt.Errorf("not a directory"))
	}

	entries, err := os.ReadDir(dir) // sorted by filename
	if err != nil {
		return nil, 0, internalErrors.NewLoadError(dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !r.eligible(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}

	type slot struct {
		doc model.Document
		err error
	}
	slots := make([]slot, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.Concurrency)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(filepath.Join(dir, name))
			if err != nil {
				slots[i].err = internalErrors.NewDocumentReadError(name, err)
				return nil
			}
			slots[i].doc = model.Document{
				ID:      name,
				Content: strings.ToValidUTF8(string(data), ""),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, internalErrors.NewLoadError(dir, err)
	}

	docs := make([]model.Document, 0, len(names))
	skipped := 0
	for _, s := range slots {
		if s.err != nil {
			skipped++
			log.Warn("skipping unreadable document", "error", s.err)
			continue
		}
		docs = append(docs, s.doc)
	}
	return docs, skipped, nil
}

func (r *DirectoryReader) eligible(name string) bool {
	for _, ext := range r.Extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
