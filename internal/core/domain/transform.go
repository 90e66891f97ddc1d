package domain

// TransformOptions carries per-invocation options into a source transform.
type TransformOptions struct {
	// SourceMap requests a source map alongside the compiled code.
	SourceMap bool
}

// TransformResult is the output of one source transform invocation.
type TransformResult struct {
	Code      []byte
	SourceMap []byte
}
