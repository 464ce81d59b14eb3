package paths

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCanonicalizePath(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "lib", "util.xqy")
	if err := os.MkdirAll(filepath.Dir(sub), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(sub, []byte("()"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := CanonicalizePath(sub, root)
	if err != nil {
		t.Fatalf("CanonicalizePath failed: %v", err)
	}
	if got != "lib/util.xqy" {
		t.Errorf("CanonicalizePath = %q, want %q", got, "lib/util.xqy")
	}

	// Missing files are canonicalized as-is
	missing := filepath.Join(root, "new.xqy")
	got, err = CanonicalizePath(missing, root)
	if err != nil {
		t.Fatalf("CanonicalizePath(missing) failed: %v", err)
	}
	if got != "new.xqy" {
		t.Errorf("CanonicalizePath(missing) = %q, want %q", got, "new.xqy")
	}
}

func TestIsWithinProject(t *testing.T) {
	root := t.TempDir()
	if !IsWithinProject(filepath.Join(root, "a.xqy"), root) {
		t.Error("file under root should be within project")
	}
	if IsWithinProject(filepath.Dir(root), root) {
		t.Error("parent of root should not be within project")
	}
}

func TestExt(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"main.xqy", "xqy"},
		{"MAIN.XQY", "xqy"},
		{"dir/lib.module.xqy", "xqy"},
		{"README", ""},
		{".hidden", "hidden"},
	}
	for _, tt := range tests {
		if got := Ext(tt.name); got != tt.want {
			t.Errorf("Ext(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestJoinProjectPath(t *testing.T) {
	got := JoinProjectPath("/work", "lib\\util.xqy")
	want := filepath.Join("/work", "lib", "util.xqy")
	if got != want {
		t.Errorf("JoinProjectPath = %q, want %q", got, want)
	}
}

func TestStateLayout(t *testing.T) {
	root := t.TempDir()
	if got := ConfigPath(root); got != filepath.Join(root, ".xqhint", "config.json") {
		t.Errorf("ConfigPath = %q", got)
	}

	dir, err := EnsureLogsDir(root)
	if err != nil {
		t.Fatalf("EnsureLogsDir failed: %v", err)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Errorf("logs dir %q was not created", dir)
	}
	if filepath.Dir(LogPath(root)) != dir {
		t.Errorf("LogPath %q not inside %q", LogPath(root), dir)
	}
}
