package script

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mosaicdesk/bridge/internal/logging"
	"github.com/mosaicdesk/bridge/internal/types"
)

func writeScript(t *testing.T, dir, name, source string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(source), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return path
}

func TestDiscoverSortedAndFiltered(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "b.js", "1;")
	writeScript(t, dir, "a.js", "1;")
	writeScript(t, dir, "notes.txt", "not a script")

	sub := filepath.Join(dir, "effects")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatal(err)
	}
	writeScript(t, sub, "wave.js", "1;")

	hidden := filepath.Join(dir, ".cache")
	if err := os.Mkdir(hidden, 0755); err != nil {
		t.Fatal(err)
	}
	writeScript(t, hidden, "skip.js", "1;")

	files, err := Discover(dir, "")
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("Expected 3 scripts, got %d: %v", len(files), files)
	}
	if filepath.Base(files[0]) != "a.js" || filepath.Base(files[1]) != "b.js" {
		t.Errorf("Expected sorted output, got %v", files)
	}

	// Top-level only.
	top, err := Discover(dir, "*.js")
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	if len(top) != 2 {
		t.Errorf("Expected 2 top-level scripts, got %v", top)
	}
}

func TestDiscoverInvalidPattern(t *testing.T) {
	if _, err := Discover(t.TempDir(), "[["); err == nil {
		t.Error("Expected error for invalid pattern")
	}
}

func TestRunFilesContinuesPastFailures(t *testing.T) {
	dir := t.TempDir()
	good := writeScript(t, dir, "good.js", `bridge.invoke("canvas.selection");`)
	bad := writeScript(t, dir, "bad.js", `throw new Error("broken");`)

	ok, _ := types.Success(map[string]interface{}{"count": 0})
	invoke := func(ctx context.Context, req types.Request, ictx *types.Context) *types.Result {
		return ok
	}

	runner := NewRunner(DefaultConfig(), invoke, logging.NewNop())
	summary, err := runner.RunFiles(context.Background(), []string{bad, good})
	if err != nil {
		t.Fatalf("RunFiles failed: %v", err)
	}

	if summary.Ok() {
		t.Error("Expected run marked failed")
	}
	if summary.Failed != 1 {
		t.Errorf("Expected 1 failure, got %d", summary.Failed)
	}
	if len(summary.Results) != 2 {
		t.Fatalf("Expected both scripts executed, got %d", len(summary.Results))
	}
	if summary.Results[1].Result.Failed() {
		t.Error("Second script should have succeeded")
	}
}

func TestRunFilesUnreadableScript(t *testing.T) {
	ok, _ := types.Success(nil)
	invoke := func(ctx context.Context, req types.Request, ictx *types.Context) *types.Result {
		return ok
	}

	runner := NewRunner(DefaultConfig(), invoke, logging.NewNop())
	summary, err := runner.RunFiles(context.Background(), []string{"/nonexistent/ghost.js"})
	if err != nil {
		t.Fatalf("RunFiles failed: %v", err)
	}
	if summary.Failed != 1 {
		t.Errorf("Expected unreadable script counted as failure, got %d", summary.Failed)
	}
}
