package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/goliatone/go-releasecycle/pkg/dataset"
)

// Loader implements dataset.Loader by delegating to file or fs.FS strategies.
// Construction helpers live in the top-level releasecycle package.
type Loader struct {
	fs fs.FS
}

// Ensure the implementation satisfies the public interface.
var _ dataset.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options.
func New(options dataset.LoaderOptions) dataset.Loader {
	return &Loader{fs: options.FileSystem}
}

// Load reads the document from the provided source and validates it.
func (l *Loader) Load(ctx context.Context, src dataset.Source) (dataset.Document, error) {
	if src == nil {
		return dataset.Document{}, errors.New("dataset loader: source is nil")
	}

	var (
		data []byte
		err  error
	)

	if err := ctx.Err(); err != nil {
		return dataset.Document{}, err
	}
	if src.Location() == "" {
		return dataset.Document{}, errors.New("dataset loader: source location is empty")
	}

	switch src.Kind() {
	case dataset.SourceKindFile:
		data, err = l.readFile(src.Location())
	case dataset.SourceKindFS:
		data, err = l.readFS(src.Location())
	default:
		err = fmt.Errorf("unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return dataset.Document{}, fmt.Errorf("dataset loader: read %s: %w", src.Location(), err)
	}

	return dataset.NewDocument(src, data)
}

func (l *Loader) readFile(path string) ([]byte, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(abs)
}

func (l *Loader) readFS(name string) ([]byte, error) {
	if l.fs == nil {
		return nil, errors.New("no filesystem configured for fs sources")
	}
	return fs.ReadFile(l.fs, name)
}
