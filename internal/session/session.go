// Package session ties the macro pre-processor and the two assembly
// passes together for one input file, owning its diagnostic collector
// and its filesystem handles for the duration of the run.
package session

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"asmkit/internal/diag"
	"asmkit/internal/fsrepo"
	"asmkit/internal/macro"
	"asmkit/internal/pass1"
	"asmkit/internal/pass2"
)

// Run assembles one base name end to end: it reads baseName+".as",
// writes baseName+".am" as the macro-expanded intermediate, then
// baseName+".ob", ".ent", ".ext" as the final outputs. It returns
// true if assembly completed without any diagnostic.
//
// Every opened handle and every intermediate/output artifact is
// released before Run returns, whether assembly succeeded or not.
func Run(baseName string) bool {
	repo := fsrepo.New(baseName)
	defer repo.Close()

	var c diag.Collector
	file := repo.Path(fsrepo.SourceSuffix)

	src, err := repo.OpenSource()
	if err != nil {
		c.Report(diag.KindCannotOpenInput, 0, file)
		report(&c)
		return false
	}

	am, err := repo.Create(fsrepo.ExpandedSuffix)
	if err != nil {
		c.Report(diag.KindCannotOpenInput, 0, file)
		report(&c)
		return false
	}
	defer repo.Remove(fsrepo.ExpandedSuffix)

	if !macro.Preprocess(src, am, file, &c) {
		report(&c)
		return false
	}
	am.Close()

	expandedLines, err := readLines(repo.Path(fsrepo.ExpandedSuffix))
	if err != nil {
		c.Report(diag.KindCannotOpenInput, 0, file)
		report(&c)
		return false
	}

	res := pass1.Run(expandedLines, file, &c)

	var ob strings.Builder
	outcome := pass2.Run(res, file, &c, &ob)

	if c.Failed() {
		repo.RemoveAll()
		report(&c)
		return false
	}

	writeOutput(repo, fsrepo.ObjectSuffix, ob.String())
	writeOrRemove(repo, fsrepo.EntrySuffix, outcome.EntryLines)
	writeOrRemove(repo, fsrepo.ExternSuffix, outcome.ExternLines)
	return true
}

// readLines reads the macro-expanded intermediate back in for the
// first pass, which operates on a line slice rather than a stream so
// it can look ahead past a label prefix without buffering itself.
func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}

func writeOutput(repo *fsrepo.Repo, suffix, content string) {
	f, err := repo.Create(suffix)
	if err != nil {
		return
	}
	f.WriteString(content)
}

// writeOrRemove writes the entry/extern output only if it would be
// non-empty; an empty one is removed rather than left as a zero-byte
// file.
func writeOrRemove(repo *fsrepo.Repo, suffix string, lines []string) {
	if len(lines) == 0 {
		repo.Remove(suffix)
		return
	}
	writeOutput(repo, suffix, strings.Join(lines, ""))
}

func report(c *diag.Collector) {
	for _, d := range c.Items() {
		fmt.Fprintln(os.Stderr, d.String())
	}
}
