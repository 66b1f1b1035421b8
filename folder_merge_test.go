package grfpatch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/woozymasta/pathrules"
)

func writeFixtureTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		full := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(full), 0o750); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(full, []byte(content), 0o600); err != nil {
			t.Fatalf("write fixture %s: %v", rel, err)
		}
	}
}

func TestMergeFolderWithoutRulesIncludesEverything(t *testing.T) {
	root := t.TempDir()
	writeFixtureTree(t, root, map[string]string{
		"texture/a.bmp": "AAA",
		"sound/b.wav":   "BBB",
	})

	entries, err := MergeFolder(root, FolderMergeOptions{})
	if err != nil {
		t.Fatalf("MergeFolder: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	for _, e := range entries {
		if e.TargetKind != TargetInContainer {
			t.Errorf("entry %q has TargetKind %v, want TargetInContainer", e.LogicalPath, e.TargetKind)
		}
	}
}

func TestMergeFolderExcludesByRule(t *testing.T) {
	root := t.TempDir()
	writeFixtureTree(t, root, map[string]string{
		"texture/a.bmp": "AAA",
		"sound/b.wav":   "BBB",
	})

	entries, err := MergeFolder(root, FolderMergeOptions{
		Include: []pathrules.Rule{
			{Action: pathrules.ActionExclude, Pattern: "sound/*"},
		},
	})
	if err != nil {
		t.Fatalf("MergeFolder: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}
	if entries[0].LogicalPath != "texture/a.bmp" {
		t.Errorf("entries[0].LogicalPath = %q, want %q", entries[0].LogicalPath, "texture/a.bmp")
	}
}

func TestApplyFolderMergeIntoContainer(t *testing.T) {
	root := t.TempDir()
	writeFixtureTree(t, root, map[string]string{
		"texture/a.bmp": "AAA",
	})

	containerPath := filepath.Join(t.TempDir(), "main.grf")
	ok, err := ApplyFolderMerge(root, containerPath, FolderMergeOptions{}, PatchOptions{CreateIfMissing: true}, nil)
	if err != nil || !ok {
		t.Fatalf("ApplyFolderMerge = (%v, %v)", ok, err)
	}

	c, err := LoadContainer(containerPath)
	if err != nil {
		t.Fatalf("LoadContainer: %v", err)
	}
	if _, ok := c.Lookup("texture/a.bmp"); !ok {
		t.Error("texture/a.bmp was not merged into the container")
	}

	// The walked root is untouched by a folder merge.
	if _, err := os.Stat(filepath.Join(root, "texture/a.bmp")); err != nil {
		t.Errorf("source file under root was removed or moved: %v", err)
	}
}
