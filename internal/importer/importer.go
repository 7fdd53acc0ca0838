// Package importer converts provider-specific export payloads into the
// canonical ImportResult consumed by the reconciliation pipeline.
//
// Adapters are pure transforms: they never write to storage. The one
// exception to full purity is read-only id resolution against catalog
// data handed in by the caller (an exact-match name table); an unmapped
// name is a fatal adapter error, not a partial-item failure. Anything
// the adapter cannot decode at all surfaces as ErrParse and fails only
// the job it belongs to.
package importer

import (
	"fmt"

	"github.com/mireo/fitvault/internal/model"
	appErr "github.com/mireo/fitvault/internal/pkg/errors"
)

// ErrUnsupportedSource is returned when a deploy input names a source
// no adapter handles.
func ErrUnsupportedSource(source model.ImportSource) error {
	return fmt.Errorf("%w: unsupported import source %q", appErr.ErrInvalid, source)
}

// IsWorkoutSource reports whether a source produces workout-shaped
// batches (replayed through the workout engine) rather than
// media-shaped ones.
func IsWorkoutSource(source model.ImportSource) bool {
	return source == model.ImportSourceStrongApp
}
