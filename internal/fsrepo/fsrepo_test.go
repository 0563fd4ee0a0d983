package fsrepo_test

import (
	"os"
	"path/filepath"
	"testing"

	"asmkit/internal/fsrepo"
)

func TestPathAppliesSuffix(t *testing.T) {
	r := fsrepo.New("foo")
	if got := r.Path(fsrepo.SourceSuffix); got != "foo.as" {
		t.Errorf("Path(.as) = %q, want foo.as", got)
	}
}

func TestCreateAndCloseReleasesHandle(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "x")
	r := fsrepo.New(base)

	f, err := r.Create(fsrepo.ObjectSuffix)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := f.WriteString("hello"); err != nil {
		t.Fatalf("WriteString: %v", err)
	}
	r.Close()

	got, err := os.ReadFile(base + ".ob")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != "hello" {
		t.Errorf("got %q, want %q", got, "hello")
	}
}

func TestRemoveAllDeletesEverything(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "x")
	r := fsrepo.New(base)

	for _, suffix := range []string{fsrepo.ExpandedSuffix, fsrepo.ObjectSuffix, fsrepo.EntrySuffix, fsrepo.ExternSuffix} {
		f, err := r.Create(suffix)
		if err != nil {
			t.Fatalf("Create(%s): %v", suffix, err)
		}
		f.Close()
	}
	r.RemoveAll()

	for _, suffix := range []string{fsrepo.ExpandedSuffix, fsrepo.ObjectSuffix, fsrepo.EntrySuffix, fsrepo.ExternSuffix} {
		if _, err := os.Stat(base + suffix); !os.IsNotExist(err) {
			t.Errorf("%s still exists after RemoveAll", suffix)
		}
	}
}
