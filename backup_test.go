package grfpatch

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveContainerWithBackupRemovesBackupByDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.grf")

	first := NewContainer()
	first.InsertOrReplace("a.txt", []byte("v1"))
	if err := first.Save(path, false); err != nil {
		t.Fatalf("initial Save: %v", err)
	}

	second := NewContainer()
	second.InsertOrReplace("a.txt", []byte("v2"))
	if err := SaveContainerWithBackup(second, path, ContainerSaveOptions{}); err != nil {
		t.Fatalf("SaveContainerWithBackup: %v", err)
	}

	if _, err := os.Stat(path + ".bak"); !os.IsNotExist(err) {
		t.Error("backup was not removed after a successful save with BackupKeep=0")
	}

	loaded, err := LoadContainer(path)
	if err != nil {
		t.Fatalf("LoadContainer: %v", err)
	}
	data, _ := loaded.Lookup("a.txt")
	if string(data) != "v2" {
		t.Errorf("a.txt = %q, want %q", data, "v2")
	}
}

func TestSaveContainerWithBackupKeepsGenerations(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.grf")

	for i, payload := range []string{"v1", "v2", "v3"} {
		c := NewContainer()
		c.InsertOrReplace("a.txt", []byte(payload))

		if i == 0 {
			if err := c.Save(path, false); err != nil {
				t.Fatalf("seed Save: %v", err)
			}
			continue
		}

		if err := SaveContainerWithBackup(c, path, ContainerSaveOptions{BackupKeep: 2}); err != nil {
			t.Fatalf("SaveContainerWithBackup(%d): %v", i, err)
		}
	}

	if _, err := os.Stat(path + ".bak"); err != nil {
		t.Errorf(".bak missing: %v", err)
	}
	if _, err := os.Stat(path + ".bak.1"); err != nil {
		t.Errorf(".bak.1 missing: %v", err)
	}
}

func TestSaveContainerWithBackupRollsBackOnFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.grf")

	original := NewContainer()
	original.InsertOrReplace("a.txt", []byte("good"))
	if err := original.Save(path, false); err != nil {
		t.Fatalf("initial Save: %v", err)
	}
	originalBytes, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read original: %v", err)
	}

	// Force the inner Save to fail by occupying the atomic-save temp slot.
	if err := os.Mkdir(path+".tmp", 0o755); err != nil {
		t.Fatalf("mkdir tmp: %v", err)
	}

	broken := NewContainer()
	broken.InsertOrReplace("a.txt", []byte("bad"))
	if err := SaveContainerWithBackup(broken, path, ContainerSaveOptions{}); err == nil {
		t.Fatal("expected SaveContainerWithBackup to fail")
	}

	gotBytes, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read after rollback: %v", err)
	}
	if string(gotBytes) != string(originalBytes) {
		t.Error("original container bytes were not restored after a failed save")
	}
	if _, err := os.Stat(path + ".bak"); !os.IsNotExist(err) {
		t.Error("backup file left behind after successful rollback")
	}
}
