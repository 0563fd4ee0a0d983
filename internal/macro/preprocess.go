package macro

import (
	"bufio"
	"io"

	"asmkit/internal/diag"
	"asmkit/internal/isa"
	"asmkit/internal/text"
)

// Preprocess expands macro definitions in src, writing the final
// expanded text to dst. It runs Phase 1 (extraction) fully before
// ever considering Phase 2 (expansion); if Phase 1 reported any
// diagnostic, Phase 2 does not run and Preprocess returns false.
func Preprocess(src io.Reader, dst io.Writer, file string, c *diag.Collector) bool {
	table := NewTable()
	intermediate, ok := extract(src, file, table, c)
	if !ok {
		return false
	}
	expand(intermediate, dst, table)
	return true
}

// extract runs Phase 1: it separates macro definitions out of the
// source into table, and returns every line that is not part of a
// definition (in its original order) for Phase 2 to re-scan. It
// always consumes the full input, accumulating diagnostics, and
// reports whether zero diagnostics fired.
func extract(src io.Reader, file string, table *Table, c *diag.Collector) ([]string, bool) {
	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 0, 1024), 1024*1024)

	var lines []string
	inDefinition := false
	currentName := ""
	lineNo := 0
	before := len(c.Items())

	for scanner.Scan() {
		lineNo++
		raw := scanner.Text()

		if len(raw) > isa.MaxLineLength {
			c.Report(diag.KindLineTooLong, lineNo, file)
			continue
		}
		if text.IsBlankOrComment(raw) {
			continue
		}

		trimmed := text.Trim(raw)
		first := text.FirstWord(trimmed)

		switch {
		case inDefinition && first == "endmacr":
			if text.Trim(text.Rest(trimmed)) != "" {
				c.Report(diag.KindExtraTextAfterEndmacr, lineNo, file)
			}
			inDefinition = false
			currentName = ""

		case inDefinition:
			table.Append(currentName, raw)

		case first == "endmacr":
			c.Report(diag.KindExtraTextAfterEndmacr, lineNo, file)

		case first == "macr":
			name := text.FirstWord(text.Rest(trimmed))
			rest := text.Trim(text.Rest(text.Rest(trimmed)))
			if name == "" || isa.IsReservedWord(name) {
				c.Report(diag.KindInvalidMacroName, lineNo, file)
				continue
			}
			if rest != "" {
				c.Report(diag.KindExtraTextAfterMacro, lineNo, file)
				continue
			}
			if table.Has(name) {
				c.Report(diag.KindMacroAlreadyExists, lineNo, file)
				continue
			}
			table.Define(name, nil)
			inDefinition = true
			currentName = name

		default:
			lines = append(lines, raw)
		}
	}

	return lines, len(c.Items()) == before
}

// expand runs Phase 2: for each line, a known macro name on its own
// (after trimming) is replaced by that macro's body; anything else is
// written through unchanged.
func expand(lines []string, dst io.Writer, table *Table) {
	w := bufio.NewWriter(dst)
	defer w.Flush()

	for _, line := range lines {
		name := text.Trim(line)
		if body, ok := table.Lookup(name); ok {
			for _, b := range body {
				io.WriteString(w, b)
				io.WriteString(w, "\n")
			}
			continue
		}
		io.WriteString(w, line)
		io.WriteString(w, "\n")
	}
}
