package archive

import (
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Option configures an Archive or Builder at construction.
type Option func(*options)

type options struct {
	fsys   afero.Fs
	logger *zap.Logger
	format Format
}

func newOptions(opts []Option) options {
	o := options{
		fsys:   afero.NewOsFs(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithFs sets the filesystem all archive and source paths are resolved
// against. Defaults to the host filesystem.
func WithFs(fsys afero.Fs) Option {
	return func(o *options) {
		o.fsys = fsys
	}
}

// WithLogger sets the logger used for debug output. Defaults to a no-op
// logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithFormat forces the archive format instead of inferring it from the
// path's suffix.
func WithFormat(format Format) Option {
	return func(o *options) {
		o.format = format
	}
}
