package domain

import "go.trai.ch/zerr"

var (
	// ErrContentNotFound is returned when the content source cannot supply a module's bytes.
	ErrContentNotFound = zerr.New("module content not found")

	// ErrEntryNotFound is returned when the entry module itself has no content.
	// Unlike ErrContentNotFound on a transitive dependency, this aborts the build.
	ErrEntryNotFound = zerr.New("entry module not found")

	// ErrResolutionFailed is returned when a specifier cannot be mapped to a module.
	ErrResolutionFailed = zerr.New("failed to resolve module specifier")

	// ErrStyleIndexOutOfRange is returned when a style sub-request names a block
	// index the component does not have.
	ErrStyleIndexOutOfRange = zerr.New("style block index out of range")

	// ErrNoEntrySpecified is returned when the graph command is invoked without an entry file.
	ErrNoEntrySpecified = zerr.New("no entry file specified")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")
)
