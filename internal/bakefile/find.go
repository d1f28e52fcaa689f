package bakefile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bakelabs/bake/internal/errors"
)

// Find locates the task document by checking root for filename, then each
// ancestor directory in turn. The depth counter is explicit: depth 0 checks
// only root, depth 1 also checks its parent, and so on. The traversal is
// fully deterministic; the first (nearest) match wins. No match within
// maxDepth is fatal.
func Find(root, filename string, maxDepth int) (string, error) {
	dir, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", root, err)
	}

	for depth := 0; depth <= maxDepth; depth++ {
		candidate := filepath.Join(dir, filename)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("no %s within %d levels of %s: %w", filename, maxDepth, root, errors.ErrNoBakefile)
}
