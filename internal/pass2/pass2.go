// Package pass2 implements the second pass: label/extern/entry
// resolution against the tables the first pass built, patching of
// pending label references, and emission of the three output files.
package pass2

import (
	"fmt"
	"io"

	"asmkit/internal/diag"
	"asmkit/internal/isa"
	"asmkit/internal/pass1"
	"asmkit/internal/word"
)

// Outcome carries whatever entry/extern lines were produced, for the
// caller to decide whether those files should be removed for being
// empty.
type Outcome struct {
	EntryLines  []string
	ExternLines []string
}

// Run resolves every pending reference and entry/extern declaration
// in res against its symbol table, reporting diagnostics for any
// unresolved name, and writes the object file to ob. It never writes
// ob if resolution failed or memory was exhausted.
func Run(res pass1.Result, file string, c *diag.Collector, ob io.Writer) Outcome {
	syms := res.Symbols

	for _, ext := range syms.Externs() {
		if syms.Has(ext.Name) {
			c.Report(diag.KindExternAlsoDefined, ext.Line, file)
		}
	}

	var outcome Outcome
	for _, req := range syms.Entries() {
		label, ok := syms.Lookup(req.Name)
		if !ok {
			c.Report(diag.KindEntryNotDefined, req.Line, file)
			continue
		}
		outcome.EntryLines = append(outcome.EntryLines, fmt.Sprintf("%s %04d\n", req.Name, label.Address))
	}

	for _, ref := range syms.Pending() {
		if label, ok := syms.Lookup(ref.Label); ok {
			patch(res.Words, ref.WordAddress, func(imm *word.Imm) { imm.SetRelocatable(label.Address) })
			continue
		}
		if syms.IsExtern(ref.Label) {
			patch(res.Words, ref.WordAddress, func(imm *word.Imm) { imm.SetExternal() })
			outcome.ExternLines = append(outcome.ExternLines, fmt.Sprintf("%s %04d\n", ref.Label, ref.WordAddress))
			continue
		}
		c.Report(diag.KindLabelUndefined, ref.Line, file)
	}

	if res.FinalIC > isa.MaxMemory {
		c.Report(diag.KindMemoryExhausted, 0, file)
		return outcome
	}

	if c.Failed() {
		return outcome
	}

	writeObject(ob, res)
	return outcome
}

// patch finds the *Imm word at wordAddress (addresses start at
// isa.StartIC) and applies fn to it. A pending reference always
// targets an *Imm word; any other variant there would be a first-pass
// defect, not a runtime condition to recover from.
func patch(words []word.Word, wordAddress int, fn func(*word.Imm)) {
	idx := wordAddress - isa.StartIC
	imm, ok := words[idx].(*word.Imm)
	if !ok {
		panic(fmt.Sprintf("pending reference at %04d does not target an immediate word", wordAddress))
	}
	fn(imm)
}

// writeObject writes the object file: a header line giving code and
// data size, then one line per word giving its address and its
// 15-bit value as zero-padded octal.
func writeObject(w io.Writer, res pass1.Result) {
	fmt.Fprintf(w, "   %d  %d\n", res.FinalIC-isa.StartIC, res.Data.Len())
	addr := isa.StartIC
	for _, wd := range res.Words {
		fmt.Fprintf(w, "%04d %05o\n", addr, wd.Bits())
		addr++
	}
	for _, v := range res.Data.Words() {
		fmt.Fprintf(w, "%04d %05o\n", addr, dataBits(v))
		addr++
	}
}

// dataBits packs a signed data value into the same 15-bit two's
// complement field width the word package uses for machine words.
func dataBits(v int) uint16 {
	return uint16(v) & 0x7FFF
}
