// SPDX-License-Identifier: MPL-2.0

package nodemod

import (
	"context"
	"fmt"
	"path/filepath"
)

// searchModule looks for name in the container directory at base and then at
// every ancestor level, mirroring Node module resolution.
//
// The search stops when ascending no longer changes the candidate path, which
// happens once the filesystem root has been examined.
func searchModule(base, name, containerDir string, exists func(string) bool) (string, bool) {
	last := ""
	for {
		candidate := filepath.Join(base, containerDir, name)
		if candidate == last {
			return "", false
		}
		last = candidate

		if exists(candidate) {
			return candidate, true
		}
		base = nextSearchBase(base, containerDir)
	}
}

// nextSearchBase returns the directory whose container is searched after base.
//
// A package living directly in a container (…/node_modules/pkg) climbs past the
// container to its owner. Anything else, including a scoped package
// (…/node_modules/@scope/pkg), first drops one extra level.
func nextSearchBase(base, containerDir string) string {
	if filepath.Base(filepath.Dir(base)) != containerDir {
		base = filepath.Dir(base)
	}
	return filepath.Dir(filepath.Dir(base))
}

// realPath returns the symlink-free form of dir, memoized per walker.
func (w *Walker) realPath(dir string) (string, error) {
	if resolved, ok := w.realPaths.Get(dir); ok {
		return resolved, nil
	}

	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return "", fmt.Errorf("resolving real path of %s: %w", dir, err)
	}
	w.realPaths.Add(dir, resolved)

	return resolved, nil
}

// resolveModule locates dependency name as required from the package at from.
// ok is false when no container above from holds it.
func (w *Walker) resolveModule(ctx context.Context, from, name string) (path string, ok bool, err error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	base, err := w.realPath(from)
	if err != nil {
		return "", false, err
	}

	path, ok = searchModule(base, name, w.opts.ContainerDir, pathExists)
	return path, ok, nil
}
