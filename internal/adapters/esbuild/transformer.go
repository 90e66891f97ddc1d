// Package esbuild implements per-extension source transforms on the esbuild API.
package esbuild

import (
	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/fuse/internal/core/domain"
	"go.trai.ch/fuse/internal/core/ports"
)

var _ ports.Transformer = (*Transformer)(nil)

// Transformer compiles one source kind to executable JavaScript plus a
// source map. Compile errors become diagnostics next to whatever output
// esbuild managed to produce.
type Transformer struct {
	loader api.Loader
}

// NewTransformer creates a Transformer for the given esbuild loader.
func NewTransformer(loader api.Loader) *Transformer {
	return &Transformer{loader: loader}
}

// Transform runs the source through esbuild.
func (t *Transformer) Transform(source []byte, path string, opts domain.TransformOptions) (domain.TransformResult, []domain.Diagnostic) {
	sourcemap := api.SourceMapNone
	if opts.SourceMap {
		sourcemap = api.SourceMapExternal
	}

	result := api.Transform(string(source), api.TransformOptions{
		Loader:     t.loader,
		Sourcefile: path,
		Sourcemap:  sourcemap,
		Target:     api.ESNext,
	})

	diags := make([]domain.Diagnostic, 0, len(result.Errors)+len(result.Warnings))
	for _, msg := range result.Errors {
		diags = append(diags, toDiagnostic(msg, domain.SeverityError, path, source))
	}
	for _, msg := range result.Warnings {
		diags = append(diags, toDiagnostic(msg, domain.SeverityWarning, path, source))
	}

	return domain.TransformResult{
		Code:      result.Code,
		SourceMap: result.Map,
	}, diags
}

// toDiagnostic converts an esbuild message. esbuild columns are 0-based.
func toDiagnostic(msg api.Message, severity domain.Severity, path string, source []byte) domain.Diagnostic {
	d := domain.Diagnostic{
		Severity: severity,
		Message:  msg.Text,
		File:     path,
		Offset:   -1,
		Source:   string(source),
	}
	if msg.Location != nil {
		d.Line = msg.Location.Line
		d.Column = msg.Location.Column + 1
	}
	return d
}
