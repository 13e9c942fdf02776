package output

import (
	"bytes"
	"strconv"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestXlsxFormat(t *testing.T) {
	results := testForecasts()

	var buf bytes.Buffer
	if err := XlsxFormat(&buf, results, "₽"); err != nil {
		t.Fatalf("XlsxFormat() error = %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("failed to reopen workbook: %v", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	expected := []string{"Summary", "Plain", "Inflated"}
	if len(sheets) != len(expected) {
		t.Fatalf("sheets = %v, expected %v", sheets, expected)
	}
	for i := range expected {
		if sheets[i] != expected[i] {
			t.Errorf("sheet %d = %s, expected %s", i, sheets[i], expected[i])
		}
	}

	name, err := f.GetCellValue("Summary", "A2")
	if err != nil || name != "Plain" {
		t.Errorf("Summary!A2 = %q (%v), expected Plain", name, err)
	}

	rows, err := f.GetRows("Plain")
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if len(rows) != 13 {
		t.Fatalf("expected header plus 12 rows, got %d", len(rows))
	}
	if rows[0][0] != "Month" {
		t.Errorf("unexpected header %v", rows[0])
	}

	raw, err := f.GetCellValue("Plain", "E13", excelize.Options{RawCellValue: true})
	if err != nil {
		t.Fatalf("GetCellValue() error = %v", err)
	}
	balance, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		t.Fatalf("final balance %q is not numeric: %v", raw, err)
	}
	if balance < 634125.15 || balance > 634125.16 {
		t.Errorf("final balance = %v, expected 634125.15", balance)
	}
}

func TestSheetName(t *testing.T) {
	used := map[string]bool{"summary": true}

	tests := []struct {
		input    string
		expected string
	}{
		{"Base", "Base"},
		{"base", "base (2)"},
		{"a/b:c", "a_b_c"},
		{"", "Scenario"},
		{"Summary", "Summary (2)"},
		{strings.Repeat("x", 40), strings.Repeat("x", 31)},
		{strings.Repeat("x", 40), strings.Repeat("x", 27) + " (2)"},
	}

	for _, tt := range tests {
		if got := SheetName(tt.input, used); got != tt.expected {
			t.Errorf("SheetName(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}
