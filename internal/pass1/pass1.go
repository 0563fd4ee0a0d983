// Package pass1 implements the first pass over the expanded source
// text: label recognition, directive dispatch, instruction encoding,
// and counter bookkeeping.
package pass1

import (
	"strconv"
	"strings"

	"asmkit/internal/data"
	"asmkit/internal/diag"
	"asmkit/internal/isa"
	"asmkit/internal/symtab"
	"asmkit/internal/text"
	"asmkit/internal/word"
)

// Result is everything the second pass needs: the instruction-word
// stream (addressed from isa.StartIC), the data-word stream, the
// populated symbol tables, and the final instruction counter.
type Result struct {
	Words   []word.Word
	Data    *data.Stream
	Symbols *symtab.Table
	FinalIC int
}

// Run processes every line of expanded source text in order,
// returning the accumulated result. It never stops early: every line
// is dispatched even after a diagnostic fires on an earlier one, so
// the collector ends up with every error in the file.
func Run(lines []string, file string, c *diag.Collector) Result {
	words := []word.Word{}
	ds := data.New()
	syms := symtab.New()
	ic := isa.StartIC

	for i, raw := range lines {
		lineNo := i + 1
		line := text.Trim(raw)
		if line == "" {
			continue
		}

		var labelName string
		first := text.FirstWord(line)
		if n := len(first); n > 1 && first[n-1] == ':' {
			labelName = first[:n-1]
			rest := text.Trim(text.Rest(line))
			next := text.FirstWord(rest)

			if len(labelName) > isa.MaxLabelLength {
				c.Report(diag.KindLabelTooLong, lineNo, file)
			} else if !isa.IsValidLabelFormat(labelName) {
				c.Report(diag.KindLabelInvalidFormat, lineNo, file)
			} else if syms.Has(labelName) {
				c.Report(diag.KindLabelDuplicate, lineNo, file)
			} else {
				switch {
				case next == ".data" || next == ".string":
					syms.Define(labelName, lineNo, symtab.KindData, ds.Len())
				case isa.IsMnemonic(next):
					syms.Define(labelName, lineNo, symtab.KindCode, ic)
				default:
					c.Report(diag.KindLabelInvalidFormat, lineNo, file)
				}
			}
			line = rest
			first = next
		}

		if line == "" {
			continue
		}
		rest := text.Trim(text.Rest(line))

		switch {
		case first == ".data":
			dispatchData(rest, lineNo, file, ds, c)

		case first == ".string":
			dispatchString(rest, lineNo, file, ds, c)

		case first == ".entry":
			dispatchEntry(rest, lineNo, file, syms, c)

		case first == ".extern":
			dispatchExtern(rest, lineNo, file, syms, c)

		default:
			op, ok := isa.Lookup(first)
			if !ok {
				c.Report(diag.KindNotAnInstruction, lineNo, file)
				continue
			}
			enc, kind, ok := isa.EncodeLine(op, rest)
			if !ok {
				c.Report(kind, lineNo, file)
				continue
			}
			base := ic
			for _, w := range enc.Words {
				words = append(words, w)
			}
			for _, ref := range enc.Refs {
				syms.AddPending(ref.Label, base+ref.WordIndex, lineNo)
			}
			ic += len(enc.Words)
		}
	}

	syms.ShiftDataLabels(ic)
	return Result{Words: words, Data: ds, Symbols: syms, FinalIC: ic}
}

// dispatchData parses a non-empty comma-separated list of signed
// decimal integers, appending one data word per value. Every field's
// comma placement and numeric format is validated across the whole
// line before any field's numeric range is checked, so a malformed
// field earlier in the line is always diagnosed ahead of a
// well-formed-but-out-of-range field later in it.
func dispatchData(rest string, lineNo int, file string, ds *data.Stream, c *diag.Collector) {
	if rest == "" {
		c.Report(diag.KindDataNoNumberAfterData, lineNo, file)
		return
	}
	if strings.HasPrefix(rest, ",") {
		c.Report(diag.KindDataLeadingComma, lineNo, file)
		return
	}
	if strings.HasSuffix(rest, ",") {
		c.Report(diag.KindDataTrailingComma, lineNo, file)
		return
	}

	fields := strings.Split(rest, ",")
	values := make([]int, len(fields))
	for i, f := range fields {
		tok := text.Trim(f)
		if tok == "" {
			c.Report(diag.KindDataConsecutiveCommas, lineNo, file)
			return
		}
		n, err := strconv.Atoi(tok)
		if err != nil {
			c.Report(diag.KindDataNotANumber, lineNo, file)
			return
		}
		values[i] = n
	}

	for _, n := range values {
		if n < data.MinValue || n > data.MaxValue {
			c.Report(diag.KindDataOutOfRange, lineNo, file)
			return
		}
	}
	for _, n := range values {
		ds.AppendNumber(n)
	}
}

// dispatchString parses a single double-quoted string and appends one
// data word per character plus a zero terminator.
func dispatchString(rest string, lineNo int, file string, ds *data.Stream, c *diag.Collector) {
	if rest == "" {
		c.Report(diag.KindDataNoCharsAfterString, lineNo, file)
		return
	}
	if len(rest) < 2 {
		c.Report(diag.KindDataStringTooShort, lineNo, file)
		return
	}
	if rest[0] != '"' || rest[len(rest)-1] != '"' {
		c.Report(diag.KindDataMissingQuotes, lineNo, file)
		return
	}
	ds.AppendString(rest[1 : len(rest)-1])
}

// dispatchEntry records a `.entry NAME` declaration.
func dispatchEntry(rest string, lineNo int, file string, syms *symtab.Table, c *diag.Collector) {
	name := text.FirstWord(rest)
	if name == "" {
		c.Report(diag.KindDirectiveNoLabelAfterEntry, lineNo, file)
		return
	}
	if text.Trim(text.Rest(rest)) != "" {
		c.Report(diag.KindDirectiveExtraWordAfterEntry, lineNo, file)
		return
	}
	syms.AddEntry(name, lineNo)
}

// dispatchExtern records a `.extern NAME` declaration.
func dispatchExtern(rest string, lineNo int, file string, syms *symtab.Table, c *diag.Collector) {
	name := text.FirstWord(rest)
	if name == "" {
		c.Report(diag.KindDirectiveNoLabelAfterExtern, lineNo, file)
		return
	}
	if text.Trim(text.Rest(rest)) != "" {
		c.Report(diag.KindDirectiveExtraWordAfterExtern, lineNo, file)
		return
	}
	syms.AddExtern(name, lineNo)
}
