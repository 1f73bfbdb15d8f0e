// SPDX-License-Identifier: MPL-2.0

package nodemod

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"
)

const (
	// WalkNotStarted means WalkTree has not been called yet.
	WalkNotStarted WalkState = iota
	// WalkInProgress means a walk is running.
	WalkInProgress
	// WalkCompleted means the walk finished and its modules are memoized.
	WalkCompleted
	// WalkFailed means the walk aborted; the error is memoized.
	WalkFailed
)

type (
	// WalkState is the lifecycle state of a Walker. Completed and failed are terminal.
	WalkState int32

	// Module is one discovered package.
	Module struct {
		// Path is the directory the package was found at. It identifies the module.
		Path string `json:"path"`
		// DepType is the strongest relationship by which the package was reached.
		DepType DepType `json:"depType"`
		// Name is the name declared in the package manifest.
		Name string `json:"name"`
		// NativeModuleType is the native build mechanism of the package.
		NativeModuleType NativeModuleType `json:"nativeModuleType"`
	}

	// Walker discovers the packages reachable from one root package.
	// A Walker walks at most once; see WalkTree.
	Walker struct {
		root   string
		opts   Options
		logger *log.Logger

		// mu guards walkHistory, modules and byPath. Filesystem access happens outside it.
		mu sync.Mutex
		// walkHistory holds every path ever visited, including dead installs
		// that have no entry in modules.
		walkHistory map[string]struct{}
		modules     []*Module
		byPath      map[string]*Module

		realPaths *lru.Cache[string, string]

		once   sync.Once
		state  atomic.Int32
		result []Module
		err    error
	}
)

// String returns the lowercase name of the walk state.
func (s WalkState) String() string {
	switch s {
	case WalkNotStarted:
		return "not-started"
	case WalkInProgress:
		return "in-progress"
	case WalkCompleted:
		return "completed"
	case WalkFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// NewWalker creates a Walker rooted at the package directory root.
// Only an empty root is rejected. Any other root, including one made of
// spaces, is made absolute against the working directory.
func NewWalker(root string, opts ...Option) (*Walker, error) {
	if root == "" {
		return nil, &InvalidRootError{Value: root}
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root module path: %w", err)
	}

	w := &Walker{
		root: absRoot,
		opts: DefaultOptions(),
		logger: log.NewWithOptions(os.Stderr, log.Options{
			Prefix: "depwalk",
			Level:  log.WarnLevel,
		}),
	}
	for _, opt := range opts {
		opt(w)
	}

	w.realPaths, err = lru.New[string, string](w.opts.RealPathCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create real path cache: %w", err)
	}

	w.logger.Debug("creating walker", "root", w.root)

	return w, nil
}

// RootModule returns the root package directory.
func (w *Walker) RootModule() string { return w.root }

// State returns the current lifecycle state.
func (w *Walker) State() WalkState { return WalkState(w.state.Load()) }

// WalkTree walks the dependency tree and returns every discovered module.
//
// The first call performs the walk using its ctx; concurrent callers block until
// it settles, and all callers (then and later) receive the same outcome. There is
// no partial result: any fatal error fails the entire walk.
func (w *Walker) WalkTree(ctx context.Context) ([]Module, error) {
	if w.State() != WalkNotStarted {
		w.logger.Debug("tree walk in progress or completed already, waiting for it")
	}

	w.once.Do(func() { w.walk(ctx) })

	if w.err != nil {
		return nil, w.err
	}
	return slices.Clone(w.result), nil
}

func (w *Walker) walk(ctx context.Context) {
	w.logger.Debug("starting tree walk", "root", w.root)
	w.state.Store(int32(WalkInProgress))

	w.walkHistory = make(map[string]struct{})
	w.byPath = make(map[string]*Module)
	w.modules = nil

	if err := w.visit(ctx, w.root, DepRoot); err != nil {
		w.err = err
		w.state.Store(int32(WalkFailed))
		return
	}

	result := make([]Module, len(w.modules))
	for i, mod := range w.modules {
		result[i] = *mod
	}
	w.result = result
	w.state.Store(int32(WalkCompleted))
}

// visit records the package at modulePath and walks its dependencies concurrently.
func (w *Walker) visit(ctx context.Context, modulePath string, depType DepType) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	w.logger.Debug("walk reached", "path", modulePath, "type", depType)

	mod, walked := w.reserve(modulePath, depType)
	if walked {
		return nil
	}

	manifest, err := LoadManifest(modulePath, w.opts.ManifestFile)
	if err != nil {
		return err
	}
	if manifest == nil {
		// Yarn leaves directories behind without cleaning them up.
		w.logger.Debug("walk hit a dead end, this module is incomplete", "path", modulePath)
		w.discard(mod)
		return nil
	}

	native := ClassifyNative(modulePath, manifest, w.opts)

	w.mu.Lock()
	mod.Name = manifest.Name
	mod.NativeModuleType = native
	w.mu.Unlock()

	g, gctx := errgroup.WithContext(ctx)

	for _, name := range SortedNames(manifest.Dependencies) {
		// npm copies optional dependencies into "dependencies" after install.
		if manifest.IsOptional(name) {
			w.logger.Debug("dependency is also marked optional, skipping as prod", "name", name, "path", modulePath)
			continue
		}
		w.walkDependency(gctx, g, modulePath, name, ChildDepType(depType, DepProd))
	}

	for _, name := range SortedNames(manifest.OptionalDependencies) {
		w.walkDependency(gctx, g, modulePath, name, ChildDepType(depType, DepOptional))
	}

	if depType == DepRoot {
		w.logger.Debug("at the root, walking development dependencies", "path", modulePath)
		for _, name := range SortedNames(manifest.DevDependencies) {
			w.walkDependency(gctx, g, modulePath, name, ChildDepType(depType, DepDev))
		}
	}

	return g.Wait()
}

// walkDependency resolves name from the package at from and visits it in g.
func (w *Walker) walkDependency(ctx context.Context, g *errgroup.Group, from, name string, depType DepType) {
	g.Go(func() error {
		found, ok, err := w.resolveModule(ctx, from, name)
		if err != nil {
			return err
		}
		if !ok {
			if depType.IsOptional() {
				w.logger.Debug("optional dependency is not installed", "name", name, "from", from)
				return nil
			}
			return &ModuleNotFoundError{Name: name, From: from}
		}
		return w.visit(ctx, found, depType)
	})
}

// reserve marks modulePath as walked and appends a placeholder record for it in
// one critical section, so a concurrent re-entry always finds the placeholder.
//
// If the path was walked before, the existing record's type is raised to
// depType when stronger and walked is true.
func (w *Walker) reserve(modulePath string, depType DepType) (mod *Module, walked bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.walkHistory[modulePath]; ok {
		existing, ok := w.byPath[modulePath]
		if !ok {
			// Dead installs stay in walkHistory so they are not checked again.
			return nil, true
		}
		if depType.Greater(existing.DepType) {
			w.logger.Debug("raising dependency type", "path", modulePath, "from", existing.DepType, "to", depType)
			existing.DepType = depType
		}
		return nil, true
	}

	w.walkHistory[modulePath] = struct{}{}
	mod = &Module{Path: modulePath, DepType: depType}
	w.modules = append(w.modules, mod)
	w.byPath[modulePath] = mod

	return mod, false
}

// discard removes a reserved record. Its path stays in walkHistory.
func (w *Walker) discard(mod *Module) {
	w.mu.Lock()
	defer w.mu.Unlock()

	delete(w.byPath, mod.Path)
	if i := slices.Index(w.modules, mod); i >= 0 {
		w.modules = slices.Delete(w.modules, i, i+1)
	}
}
