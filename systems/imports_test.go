package systems

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const modulePath = "github.com/pthm-cable/slide"

// moduleImports returns every import reachable from the given module
// packages, following only packages inside the module. Test files are
// skipped.
func moduleImports(t *testing.T, root string, pkgs ...string) map[string]string {
	t.Helper()
	seen := map[string]string{} // import -> importing package
	queue := append([]string(nil), pkgs...)
	visited := map[string]bool{}

	for len(queue) > 0 {
		pkg := queue[0]
		queue = queue[1:]
		if visited[pkg] {
			continue
		}
		visited[pkg] = true

		dir := filepath.Join(root, filepath.FromSlash(pkg))
		entries, err := os.ReadDir(dir)
		require.NoError(t, err, pkg)
		for _, e := range entries {
			name := e.Name()
			if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
				continue
			}
			f, err := parser.ParseFile(token.NewFileSet(), filepath.Join(dir, name), nil, parser.ImportsOnly)
			require.NoError(t, err, name)
			for _, imp := range f.Imports {
				path, err := strconv.Unquote(imp.Path.Value)
				require.NoError(t, err)
				if _, ok := seen[path]; !ok {
					seen[path] = pkg
				}
				if local, ok := strings.CutPrefix(path, modulePath+"/"); ok {
					queue = append(queue, local)
				}
			}
		}
	}
	return seen
}

func TestKernelBuildsWithoutWindowLibraries(t *testing.T) {
	// Movement, input scripts and telemetry run headless; only the sinks
	// and debug UI may pull in cgo window or terminal libraries.
	imports := moduleImports(t, "..", "systems", "input", "telemetry", "level", "config")

	for path, from := range imports {
		assert.NotContains(t, path, "raylib-go", "imported by %s", from)
		assert.NotContains(t, path, "tcell", "imported by %s", from)
		assert.NotEqual(t, modulePath+"/renderer", path, "imported by %s", from)
		assert.NotEqual(t, modulePath+"/ui", path, "imported by %s", from)
	}
	assert.Contains(t, imports, modulePath+"/collision")
}
