package app

import "errors"

// Errors returned by pipeline execution.
var (
	// ErrPathOutOfRange indicates a step path index beyond the addressed node.
	ErrPathOutOfRange = errors.New("path index out of range")

	// ErrPathNotParent indicates a step path descending into a childless node.
	ErrPathNotParent = errors.New("path descends into a childless node")

	// ErrRenameTarget indicates a rename range that does not enclose exactly
	// one container element.
	ErrRenameTarget = errors.New("rename range must enclose exactly one container")

	// ErrWatchInPlace indicates a watch over a pipeline that rewrites its own
	// input and would re-trigger itself forever.
	ErrWatchInPlace = errors.New("watch needs distinct input and output paths")
)
