package diag_test

import (
	"testing"

	"asmkit/internal/diag"
)

func TestCollectorAccumulatesInOrder(t *testing.T) {
	var c diag.Collector

	if c.Failed() {
		t.Fatalf("fresh collector should not be failed")
	}

	c.Report(diag.KindLineTooLong, 3, "x.as")
	c.Report(diag.KindLabelDuplicate, 7, "x.as")

	if !c.Failed() {
		t.Fatalf("collector with diagnostics should be failed")
	}

	items := c.Items()
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[0].Kind != diag.KindLineTooLong || items[0].Line != 3 {
		t.Errorf("unexpected first item: %+v", items[0])
	}
	if items[1].Kind != diag.KindLabelDuplicate || items[1].Line != 7 {
		t.Errorf("unexpected second item: %+v", items[1])
	}
}

func TestDiagnosticString(t *testing.T) {
	d := diag.Diagnostic{Kind: diag.KindLabelTooLong, Line: 12, File: "x.as"}
	want := "Error: label name too long at line 12 in file x.as"
	if got := d.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
