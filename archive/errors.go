package archive

import (
	"errors"

	"github.com/blackroad/roadarchive/internal/codec"
)

var (
	// ErrUnknownFormat reports that a file name's suffix matches no known
	// archive format.
	ErrUnknownFormat = errors.New("unknown archive format")

	// ErrMemberNotFound reports that a requested member does not exist in
	// the archive.
	ErrMemberNotFound = codec.ErrMemberNotFound

	// ErrUnsupported reports a container operation invoked on a
	// non-container format, such as listing members of a plain gzip file.
	ErrUnsupported = errors.New("operation not supported by archive format")
)
