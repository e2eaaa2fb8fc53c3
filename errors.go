package strata

import "errors"

var (
	// ErrRuntimeActive is returned by New when another Runtime in this
	// process has not been closed yet.
	ErrRuntimeActive = errors.New("runtime already active")

	// ErrRuntimeClosed is returned by operations on a Runtime after Close.
	ErrRuntimeClosed = errors.New("runtime is closed")

	// ErrNoRoot is returned by Next when no root component is set.
	ErrNoRoot = errors.New("no root component")

	// ErrRegistryFull is returned when attaching a component would exceed
	// the stacking registry's capacity.
	ErrRegistryFull = errors.New("component registry full")

	// ErrNotTerminal is returned by New when stdin or stdout is not a tty.
	ErrNotTerminal = errors.New("not a terminal")

	// ErrSizeOverflow is returned when the reported terminal size does not
	// fit the cell coordinate range.
	ErrSizeOverflow = errors.New("terminal size out of range")

	// ErrEncoding is returned when the locale names a charset no encoder
	// is available for.
	ErrEncoding = errors.New("unsupported terminal encoding")
)
