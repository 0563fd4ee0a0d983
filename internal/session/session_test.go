package session_test

import (
	"os"
	"path/filepath"
	"testing"

	"asmkit/internal/session"
)

func writeSource(t *testing.T, base, content string) {
	t.Helper()
	if err := os.WriteFile(base+".as", []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestRunStopProducesObjectFile(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "prog")
	writeSource(t, base, "stop\n")

	if ok := session.Run(base); !ok {
		t.Fatal("Run returned false for a valid program")
	}

	ob, err := os.ReadFile(base + ".ob")
	if err != nil {
		t.Fatalf("ReadFile(.ob): %v", err)
	}
	want := "   1  0\n0100 74004\n"
	if string(ob) != want {
		t.Errorf("object = %q, want %q", ob, want)
	}

	if _, err := os.Stat(base + ".am"); !os.IsNotExist(err) {
		t.Error(".am intermediate should be removed after a successful run")
	}
	if _, err := os.Stat(base + ".ent"); !os.IsNotExist(err) {
		t.Error(".ent should be removed when there are no entry declarations")
	}
	if _, err := os.Stat(base + ".ext"); !os.IsNotExist(err) {
		t.Error(".ext should be removed when there are no extern declarations")
	}
}

func TestRunDiagnosticRemovesAllOutputs(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "bad")
	writeSource(t, base, "add r1 r2\n")

	if ok := session.Run(base); ok {
		t.Fatal("Run returned true for a program with a missing comma")
	}

	for _, suffix := range []string{".ob", ".ent", ".ext", ".am"} {
		if _, err := os.Stat(base + suffix); !os.IsNotExist(err) {
			t.Errorf("%s should not exist after a failed run", suffix)
		}
	}
}

func TestRunCannotOpenInput(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "missing")

	if ok := session.Run(base); ok {
		t.Fatal("Run returned true for a nonexistent input")
	}
}

func TestRunEntryAndExternProduceFiles(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "ext")
	writeSource(t, base, ".extern K\nMAIN: jmp K\nstop\n.entry MAIN\n")

	if ok := session.Run(base); !ok {
		t.Fatal("Run returned false for a valid program")
	}

	ent, err := os.ReadFile(base + ".ent")
	if err != nil {
		t.Fatalf("ReadFile(.ent): %v", err)
	}
	if string(ent) != "MAIN 0100\n" {
		t.Errorf(".ent = %q, want %q", ent, "MAIN 0100\n")
	}

	ext, err := os.ReadFile(base + ".ext")
	if err != nil {
		t.Fatalf("ReadFile(.ext): %v", err)
	}
	if string(ext) != "K 0101\n" {
		t.Errorf(".ext = %q, want %q", ext, "K 0101\n")
	}
}
