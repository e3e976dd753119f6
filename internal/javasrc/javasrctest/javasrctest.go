// Package javasrctest loads Java fixtures that mark the caret with /*|*/.
package javasrctest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/calumari/dtogen/internal/document"
	"github.com/calumari/dtogen/internal/generator"
	"github.com/calumari/dtogen/internal/javasrc"
)

// Caret marks the caret position in fixture sources.
const Caret = "/*|*/"

// Cut removes the first caret marker from src and returns its offset, or -1
// when src has none.
func Cut(src string) (string, int) {
	i := strings.Index(src, Caret)
	if i < 0 {
		return src, -1
	}
	return src[:i] + src[i+len(Caret):], i
}

// Fixture is a directory of Java sources parsed into one index.
type Fixture struct {
	Index *javasrc.Index
	File  *javasrc.File
	Caret int
}

// Load parses every .java file in dir. The marker in caretFile becomes the
// caret; markers in the other files are dropped.
func Load(t testing.TB, dir, caretFile string) *Fixture {
	t.Helper()
	paths, err := filepath.Glob(filepath.Join(dir, "*.java"))
	require.NoError(t, err)
	require.NotEmpty(t, paths, "no java sources in %s", dir)

	fx := &Fixture{Caret: -1}
	var files []*javasrc.File
	for _, path := range paths {
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		src, caret := Cut(string(data))
		f, err := javasrc.Parse(filepath.Base(path), src)
		require.NoError(t, err)
		files = append(files, f)
		if filepath.Base(path) == caretFile {
			fx.File, fx.Caret = f, caret
		}
	}
	require.NotNil(t, fx.File, "%s not found in %s", caretFile, dir)
	require.GreaterOrEqual(t, fx.Caret, 0, "%s has no caret marker", caretFile)
	fx.Index = javasrc.NewIndex(files...)
	return fx
}

// Command returns a command invocation at the caret over a fresh buffer.
func (fx *Fixture) Command() generator.Invocation {
	return generator.Invocation{
		Source:   fx.File,
		Document: document.New(fx.File.Src),
		Trigger:  generator.CommandTrigger(fx.Caret),
	}
}

// Completion returns a completion invocation for the member access ending at
// the caret.
func (fx *Fixture) Completion(t testing.TB) generator.Invocation {
	t.Helper()
	q, ok := fx.File.QualifierAt(fx.Caret)
	require.True(t, ok, "no qualifier at caret")
	return generator.Invocation{
		Source:   fx.File,
		Document: document.New(fx.File.Src),
		Trigger:  generator.CompletionTrigger(q),
	}
}
