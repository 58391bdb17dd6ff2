package releasecycle

import (
	internalLoader "github.com/goliatone/go-releasecycle/internal/dataset/loader"
	"github.com/goliatone/go-releasecycle/pkg/dataset"
)

// NewLoader constructs a loader using the internal implementation while keeping
// the concrete type hidden from consumers.
func NewLoader(options ...dataset.LoaderOption) dataset.Loader {
	cfg := dataset.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}
