package isa

import (
	"strings"

	"asmkit/internal/diag"
	"asmkit/internal/text"
	"asmkit/internal/word"
)

// LabelUse records that the word at Words[WordIndex] in an Encoded
// result is an unresolved direct-addressing reference to Label; the
// caller (the first-pass driver) turns this into a pending reference
// once it knows the absolute word address.
type LabelUse struct {
	Label     string
	WordIndex int
}

// Encoded is the result of successfully encoding one instruction line:
// its head word plus 0-2 extension words, and any label uses among
// them.
type Encoded struct {
	Words []word.Word
	Refs  []LabelUse
}

// tokenizeOperands splits an operand list into a flat token stream
// where each comma is its own token, so that leading/duplicate/
// trailing/missing commas can all be detected positionally.
func tokenizeOperands(s string) []string {
	var toks []string
	var sb strings.Builder
	flush := func() {
		if sb.Len() > 0 {
			toks = append(toks, sb.String())
			sb.Reset()
		}
	}
	for _, r := range s {
		switch {
		case r == ',':
			flush()
			toks = append(toks, ",")
		case r == ' ' || r == '\t' || r == '\r' || r == '\n':
			flush()
		default:
			sb.WriteRune(r)
		}
	}
	flush()
	return toks
}

// splitTwoOperands applies the comma-placement policy described in
// §4.5 to a two-operand tail, returning the raw source/destination
// tokens on success.
func splitTwoOperands(rest string) (src, dst string, kind diag.Kind, ok bool) {
	toks := tokenizeOperands(rest)
	if len(toks) == 0 {
		return "", "", diag.KindOperandMissing, false
	}
	if toks[0] == "," {
		return "", "", diag.KindCommaLeading, false
	}

	commaIdx := -1
	for i, t := range toks {
		if t == "," {
			commaIdx = i
			break
		}
	}
	if commaIdx == -1 {
		if len(toks) < 2 {
			return "", "", diag.KindOperandMissing, false
		}
		return "", "", diag.KindCommaMissingBetween, false
	}
	if commaIdx != 1 {
		return "", "", diag.KindOperandExtra, false
	}

	src = toks[0]
	if commaIdx+1 < len(toks) && toks[commaIdx+1] == "," {
		return "", "", diag.KindCommaDuplicate, false
	}
	if commaIdx+1 >= len(toks) {
		return "", "", diag.KindCommaTrailing, false
	}
	dst = toks[commaIdx+1]

	rem := toks[commaIdx+2:]
	if len(rem) > 0 {
		if len(rem) == 1 && rem[0] == "," {
			return "", "", diag.KindCommaTrailing, false
		}
		return "", "", diag.KindOperandExtra, false
	}
	return src, dst, diag.KindNone, true
}

// splitOneOperand applies the same comma policy to a one-operand
// tail, where only a trailing comma or trailing extra text is
// possible.
func splitOneOperand(rest string) (dst string, kind diag.Kind, ok bool) {
	toks := tokenizeOperands(rest)
	if len(toks) == 0 {
		return "", diag.KindOperandMissing, false
	}
	if toks[0] == "," {
		return "", diag.KindCommaLeading, false
	}
	dst = toks[0]
	rem := toks[1:]
	if len(rem) > 0 {
		if len(rem) == 1 && rem[0] == "," {
			return "", diag.KindCommaTrailing, false
		}
		return "", diag.KindOperandExtra, false
	}
	return dst, diag.KindNone, true
}

// resolveOperand turns a raw token into a validated Operand for the
// given role (src/dst), checking range, label format, and addressing
// mode admissibility in that order.
func resolveOperand(tok string, allowsMode func(Mode) bool) (Operand, diag.Kind, bool) {
	op := ParseOperand(tok)
	if op.Malformed {
		return op, diag.KindOperandInvalidType, false
	}
	if op.Mode == ModeImmediate && (op.Value < MinImmediate || op.Value > MaxImmediate) {
		return op, diag.KindOperandOutOfRange, false
	}
	if op.Mode == ModeDirect && !IsValidLabelFormat(op.Label) {
		return op, diag.KindLabelInvalidFormat, false
	}
	if !allowsMode(op.Mode) {
		return op, diag.KindOperandInvalidType, false
	}
	return op, diag.KindNone, true
}

// EncodeLine validates and encodes one instruction line's operand
// tail against op, returning the encoded words and any label uses.
func EncodeLine(op Operation, rest string) (Encoded, diag.Kind, bool) {
	head := word.Head{Opcode: op.Opcode, ARE: word.AREAbsolute}

	switch op.Operands {
	case Operands0:
		if text.Trim(rest) != "" {
			return Encoded{}, diag.KindOperandExtra, false
		}
		return Encoded{Words: []word.Word{head}}, diag.KindNone, true

	case Operands1:
		tok, kind, ok := splitOneOperand(rest)
		if !ok {
			return Encoded{}, kind, false
		}
		operand, kind, ok := resolveOperand(tok, op.AllowsDst)
		if !ok {
			return Encoded{}, kind, false
		}
		head.DstMask = operand.Mode.Mask()
		ext, refs := extensionWords([]Operand{operand}, []bool{false})
		words := append([]word.Word{head}, ext...)
		shift(refs, 1)
		return Encoded{Words: words, Refs: refs}, diag.KindNone, true

	case Operands2:
		srcTok, dstTok, kind, ok := splitTwoOperands(rest)
		if !ok {
			return Encoded{}, kind, false
		}
		srcOperand, kind, ok := resolveOperand(srcTok, op.AllowsSrc)
		if !ok {
			return Encoded{}, kind, false
		}
		dstOperand, kind, ok := resolveOperand(dstTok, op.AllowsDst)
		if !ok {
			return Encoded{}, kind, false
		}
		head.SrcMask = srcOperand.Mode.Mask()
		head.DstMask = dstOperand.Mode.Mask()
		ext, refs := extensionWords([]Operand{srcOperand, dstOperand}, []bool{true, false})
		words := append([]word.Word{head}, ext...)
		shift(refs, 1)
		return Encoded{Words: words, Refs: refs}, diag.KindNone, true
	}

	return Encoded{}, diag.KindNotAnInstruction, false
}

// extensionWords builds the 0-2 extension words for a validated
// operand list, sharing one Reg word when both operands (in the
// two-operand case) are register-class. isSrc marks, per operand
// position, whether it fills the source or destination half of a
// shared Reg word.
func extensionWords(operands []Operand, isSrc []bool) ([]word.Word, []LabelUse) {
	if len(operands) == 2 && operands[0].Mode.IsRegisterClass() && operands[1].Mode.IsRegisterClass() {
		return []word.Word{word.Reg{
			SrcReg: uint8(operands[0].Value),
			DstReg: uint8(operands[1].Value),
			ARE:    word.AREAbsolute,
		}}, nil
	}

	var words []word.Word
	var refs []LabelUse
	for i, op := range operands {
		switch {
		case op.Mode.IsRegisterClass():
			r := word.Reg{ARE: word.AREAbsolute}
			if isSrc[i] {
				r.SrcReg = uint8(op.Value)
			} else {
				r.DstReg = uint8(op.Value)
			}
			words = append(words, r)
		case op.Mode == ModeDirect:
			idx := len(words)
			words = append(words, &word.Imm{Value: 0, ARE: word.AREAbsolute})
			refs = append(refs, LabelUse{Label: op.Label, WordIndex: idx})
		default: // ModeImmediate
			words = append(words, &word.Imm{Value: int16(op.Value), ARE: word.AREAbsolute})
		}
	}
	return words, refs
}

func shift(refs []LabelUse, delta int) {
	for i := range refs {
		refs[i].WordIndex += delta
	}
}
