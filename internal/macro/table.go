// Package macro implements the pre-processing stage that expands
// parameterless text macros before the first pass ever sees a line.
package macro

// Table maps a macro name to its ordered body lines. Expected sizes
// are small, so a plain map is enough; insertion order of names
// themselves is never observed.
type Table struct {
	bodies map[string][]string
}

// NewTable returns an empty Table.
func NewTable() *Table {
	return &Table{bodies: make(map[string][]string)}
}

// Has reports whether name is already defined.
func (t *Table) Has(name string) bool {
	_, ok := t.bodies[name]
	return ok
}

// Define records a new macro body. The caller must check Has first.
func (t *Table) Define(name string, body []string) {
	t.bodies[name] = body
}

// Append adds one more line to an in-progress macro body.
func (t *Table) Append(name, line string) {
	t.bodies[name] = append(t.bodies[name], line)
}

// Lookup returns a macro's body lines.
func (t *Table) Lookup(name string) ([]string, bool) {
	b, ok := t.bodies[name]
	return b, ok
}
