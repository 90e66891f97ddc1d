package graph

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"golang.org/x/sync/errgroup"

	"go.trai.ch/fuse/internal/core/domain"
	"go.trai.ch/fuse/internal/core/ports"
	"go.trai.ch/fuse/internal/engine/sfc"
	"go.trai.ch/zerr"
)

// Builder constructs the module dependency graph rooted at an entry file.
//
// Each file becomes one node: its identity is resolved, its content loaded
// and transformed, its import edges extracted, and every non-external edge
// recursed into concurrently. Successfully built nodes are memoized in the
// graph cache for the lifetime of the process.
type Builder struct {
	resolver  ports.Resolver
	content   ports.ContentSource
	registry  ports.TransformRegistry
	extractor ports.Extractor
	compiler  *sfc.Compiler
	cache     *Cache
	telemetry ports.Telemetry
	log       ports.Logger
}

// NewBuilder creates a new Builder.
func NewBuilder(
	resolver ports.Resolver,
	content ports.ContentSource,
	registry ports.TransformRegistry,
	extractor ports.Extractor,
	compiler *sfc.Compiler,
	cache *Cache,
	telemetry ports.Telemetry,
	log ports.Logger,
) *Builder {
	return &Builder{
		resolver:  resolver,
		content:   content,
		registry:  registry,
		extractor: extractor,
		compiler:  compiler,
		cache:     cache,
		telemetry: telemetry,
		log:       log,
	}
}

// Cache returns the builder's node cache.
func (b *Builder) Cache() *Cache {
	return b.cache
}

// Resolve builds the graph rooted at specifier. importer is empty for the
// entry file. It fails when the specifier cannot be resolved, when the entry
// file is missing, or when any transitive dependency fails to resolve;
// every compiler-level problem instead degrades into node diagnostics.
func (b *Builder) Resolve(ctx context.Context, specifier, importer string) (*domain.Module, error) {
	info, err := b.resolver.Resolve(ctx, specifier, importer)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "resolving entry"), "specifier", specifier)
	}
	return b.build(ctx, info, "", true)
}

// build returns the node for info, either by joining an in-flight or
// completed build from the cache or by becoming the owner that builds it.
// importer is the canonical path of the node whose edge led here, empty for
// the entry; an import cycle returns nil so the caller keeps the edge
// without waiting.
func (b *Builder) build(ctx context.Context, info domain.ModuleInfo, importer string, isEntry bool) (*domain.Module, error) {
	e, owner, cyclic := b.cache.acquire(importer, info.CanonicalPath)
	if cyclic {
		return nil, nil
	}
	if !owner {
		defer b.cache.release(importer, info.CanonicalPath)
		select {
		case <-e.done:
			if e.err == nil {
				_, vtx := b.telemetry.Record(ctx, "module "+info.Name)
				vtx.Cached()
				vtx.Complete(nil)
			}
			return e.node, e.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	node, err := b.compileNode(ctx, info, isEntry)
	b.cache.finish(importer, info.CanonicalPath, e, node, err)
	return node, err
}

func (b *Builder) compileNode(ctx context.Context, info domain.ModuleInfo, isEntry bool) (node *domain.Module, err error) {
	ctx, vtx := b.telemetry.Record(ctx, "module "+info.Name)
	defer func() { vtx.Complete(err) }()

	node = &domain.Module{
		Name:      info.Name,
		Extension: strings.TrimPrefix(strings.ToLower(path.Ext(info.CanonicalPath)), "."),
		Info:      info,
	}

	raw, readErr := b.content.Read(ctx, info.CanonicalPath)
	switch {
	case readErr == nil:
	case errors.Is(readErr, domain.ErrContentNotFound) && isEntry:
		err = zerr.With(domain.ErrEntryNotFound, "path", info.CanonicalPath)
		return nil, err
	case errors.Is(readErr, domain.ErrContentNotFound):
		// A missing nested file degrades to an empty node so one broken
		// import does not take down the whole graph.
		b.log.Warn(fmt.Sprintf("module %s: content missing, degrading to empty module", info.Name))
		vtx.Log(domain.LogLevelWarn, "content missing")
		return node, nil
	default:
		err = zerr.Wrap(readErr, "reading module content")
		return nil, err
	}
	node.RawContent = string(raw)

	deps, err := b.compileContent(node, raw, vtx)
	if err != nil {
		return nil, err
	}

	// Resolve every edge's identity up front, in declaration order.
	for i := range deps {
		target, resolveErr := b.resolver.Resolve(ctx, deps[i].Specifier, info.CanonicalPath)
		if resolveErr != nil {
			err = zerr.With(zerr.Wrap(resolveErr, "resolving dependency"), "specifier", deps[i].Specifier)
			return nil, err
		}
		deps[i].Info = target
	}
	node.Dependencies = deps
	node.FullDependencies = append([]domain.Dependency(nil), deps...)

	// Fan out over the non-external edges; the node is complete only once
	// every child has settled.
	children := make([]*domain.Module, len(deps))
	g, gctx := errgroup.WithContext(ctx)
	for i, dep := range deps {
		if dep.Info.External {
			continue
		}
		g.Go(func() error {
			child, childErr := b.build(gctx, dep.Info, info.CanonicalPath, false)
			if childErr != nil {
				return childErr
			}
			children[i] = child
			return nil
		})
	}
	if waitErr := g.Wait(); waitErr != nil {
		err = waitErr
		return nil, err
	}

	// Fold transitive results in declaration order, regardless of which
	// child finished first.
	for _, child := range children {
		if child != nil {
			node.AppendSubtree(child)
		}
	}
	return node, nil
}

// compileContent fills in the node's compiled output and returns its direct
// edges with unresolved identities.
func (b *Builder) compileContent(node *domain.Module, raw []byte, vtx ports.Vertex) ([]domain.Dependency, error) {
	info := node.Info

	if node.Extension == domain.ComponentExtension {
		res := b.compiler.Compile(node.RawContent, info.CanonicalPath, info.Name)
		node.Component = res.Build
		node.Code = res.Code
		node.Diagnostics = res.Diagnostics
		node.StyleHeaders = res.StyleHeaders
		if res.Build.Script != nil {
			node.Exports = res.Build.Script.Exports
		}
		b.reportDiagnostics(vtx, res.Diagnostics)
		if res.Build.Script == nil {
			return nil, nil
		}
		return res.Build.Script.Dependencies, nil
	}

	transformer, ok := b.registry.Lookup(node.Extension)
	if !ok {
		b.log.Warn(fmt.Sprintf("module %s: no transform registered for extension %q, skipping", info.Name, node.Extension))
		vtx.Log(domain.LogLevelWarn, "unsupported extension")
		return nil, nil
	}

	result, diags := transformer.Transform(raw, info.CanonicalPath, domain.TransformOptions{SourceMap: true})
	node.Code = result.Code
	node.SourceMap = result.SourceMap
	node.Diagnostics = diags
	b.reportDiagnostics(vtx, diags)

	if len(node.Code) == 0 {
		return nil, nil
	}
	deps, exports, err := b.extractor.Extract(node.Code, node.Name)
	if err != nil {
		return nil, zerr.Wrap(err, "extracting dependencies")
	}
	node.Exports = exports
	return deps, nil
}

func (b *Builder) reportDiagnostics(vtx ports.Vertex, diags []domain.Diagnostic) {
	for _, d := range diags {
		switch d.Severity {
		case domain.SeverityError:
			vtx.Log(domain.LogLevelError, d.String())
			fmt.Fprintln(vtx.Stderr(), d.Frame())
			b.log.Error(errors.New(d.String()))
		default:
			vtx.Log(domain.LogLevelWarn, d.String())
			b.log.Warn(d.String())
		}
	}
}
