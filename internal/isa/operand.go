package isa

import "strconv"

// Immediate and .data/.string numeric ranges, per the 12-bit and
// 15-bit word fields they are packed into.
const (
	MinImmediate = -2048
	MaxImmediate = 2047
	MinData      = -16384
	MaxData      = 16383

	MaxLabelLength = 31
	MaxLineLength  = 80
	StartIC        = 100
	MaxMemory      = 4096
)

// Operand is a parsed instruction operand: its addressing mode plus
// whatever value that mode carries (an immediate literal or a
// register number), or the label text for direct addressing.
type Operand struct {
	Mode      Mode
	Value     int    // immediate literal, or register number 0..7
	Label     string // set when Mode == ModeDirect
	Malformed bool   // true if an immediate/register form failed to parse
}

// ParseOperand classifies a single operand token. Anything that does
// not look like an immediate (#N), a register (rK), or an indirect
// register (*rK) falls through to direct/label addressing, leaving
// label-format validation to a later, dedicated check.
func ParseOperand(tok string) Operand {
	switch {
	case len(tok) > 0 && tok[0] == '#':
		n, err := strconv.Atoi(tok[1:])
		if err != nil {
			return Operand{Mode: ModeImmediate, Malformed: true}
		}
		return Operand{Mode: ModeImmediate, Value: n}

	case isRegisterToken(tok):
		return Operand{Mode: ModeDirectReg, Value: int(tok[1] - '0')}

	case isIndirectRegisterToken(tok):
		return Operand{Mode: ModeIndirectReg, Value: int(tok[2] - '0')}

	default:
		return Operand{Mode: ModeDirect, Label: tok}
	}
}

func isRegisterToken(tok string) bool {
	return len(tok) == 2 && tok[0] == 'r' && tok[1] >= '0' && tok[1] <= '7'
}

func isIndirectRegisterToken(tok string) bool {
	return len(tok) == 3 && tok[0] == '*' && tok[1] == 'r' && tok[2] >= '0' && tok[2] <= '7'
}

// IsValidLabelFormat reports whether name satisfies the label naming
// rule: length in [1,31], first character alphabetic, remaining
// characters alphanumeric. It does not check reserved words.
func IsValidLabelFormat(name string) bool {
	if len(name) == 0 || len(name) > MaxLabelLength {
		return false
	}
	if !isAlpha(name[0]) {
		return false
	}
	for i := 1; i < len(name); i++ {
		if !isAlnum(name[i]) {
			return false
		}
	}
	return true
}

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isAlnum(b byte) bool {
	return isAlpha(b) || isDigit(b)
}
