// Package symtab holds the per-session tables that tie a name used in
// source text to the address it resolves to: the label table itself,
// the entry and extern declaration lists, and the list of pending
// label references left behind by the first pass for the second pass
// to patch.
package symtab

// Kind classifies what a label's address actually counts: an
// instruction word or a data word.
type Kind int

const (
	KindCode Kind = iota
	KindData
)

// Label is one defined name and the address it resolves to. Address is
// relative to its own counter at definition time; data-bearing labels
// are shifted by the final instruction count once, after the first
// pass completes (see Table.ShiftDataLabels).
type Label struct {
	Name    string
	Line    int
	Kind    Kind
	Address int
}

// EntryRequest is one `.entry NAME` declaration awaiting second-pass
// resolution.
type EntryRequest struct {
	Name string
	Line int
}

// ExternDecl is one `.extern NAME` declaration.
type ExternDecl struct {
	Name string
	Line int
}

// PendingRef is one unresolved direct-addressing word left by the
// first pass: WordAddress is the absolute memory address of the
// *Imm word to patch once Label's address (or extern-ness) is known.
type PendingRef struct {
	Label       string
	WordAddress int
	Line        int
}

// Table owns every name-to-address mapping for a single assembly
// session. Nothing here is shared across sessions.
type Table struct {
	labels  map[string]*Label
	order   []string
	entries []EntryRequest
	externs []ExternDecl
	pending []PendingRef
}

// New returns an empty Table.
func New() *Table {
	return &Table{labels: make(map[string]*Label)}
}

// Lookup finds a defined label by name.
func (t *Table) Lookup(name string) (*Label, bool) {
	l, ok := t.labels[name]
	return l, ok
}

// Has reports whether name is already defined.
func (t *Table) Has(name string) bool {
	_, ok := t.labels[name]
	return ok
}

// Define records a new label. The caller must check Has first; Define
// itself does not detect duplicates, since the duplicate case is a
// diagnostic, not a program error.
func (t *Table) Define(name string, line int, kind Kind, address int) {
	t.labels[name] = &Label{Name: name, Line: line, Kind: kind, Address: address}
	t.order = append(t.order, name)
}

// Labels returns every defined label in definition order.
func (t *Table) Labels() []*Label {
	out := make([]*Label, 0, len(t.order))
	for _, name := range t.order {
		out = append(out, t.labels[name])
	}
	return out
}

// ShiftDataLabels adds finalIC to the address of every data-bearing
// label, exactly once, after the first pass has finished and the
// final instruction count is known.
func (t *Table) ShiftDataLabels(finalIC int) {
	for _, name := range t.order {
		l := t.labels[name]
		if l.Kind == KindData {
			l.Address += finalIC
		}
	}
}

// AddEntry records a `.entry NAME` declaration.
func (t *Table) AddEntry(name string, line int) {
	t.entries = append(t.entries, EntryRequest{Name: name, Line: line})
}

// Entries returns every `.entry` declaration in source order.
func (t *Table) Entries() []EntryRequest {
	return t.entries
}

// AddExtern records a `.extern NAME` declaration.
func (t *Table) AddExtern(name string, line int) {
	t.externs = append(t.externs, ExternDecl{Name: name, Line: line})
}

// Externs returns every `.extern` declaration in source order.
func (t *Table) Externs() []ExternDecl {
	return t.externs
}

// IsExtern reports whether name was declared external.
func (t *Table) IsExtern(name string) bool {
	for _, e := range t.externs {
		if e.Name == name {
			return true
		}
	}
	return false
}

// AddPending records an unresolved direct-addressing word for the
// second pass to patch.
func (t *Table) AddPending(label string, wordAddress, line int) {
	t.pending = append(t.pending, PendingRef{Label: label, WordAddress: wordAddress, Line: line})
}

// Pending returns every unresolved reference in the order it was
// recorded.
func (t *Table) Pending() []PendingRef {
	return t.pending
}
