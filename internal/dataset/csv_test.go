package dataset

import (
	"errors"
	"strings"
	"testing"
)

func TestParseCSVPicksPaymentColumn(t *testing.T) {
	input := "\ufeffride_id,payment,fare\n1,credit card,12.5\n2, cash ,7\n3,,9\n4,credit card,3\n"
	records, err := ParseCSV(strings.NewReader(input), "")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := []string{"credit card", "cash", "credit card"}
	if len(records) != len(want) {
		t.Fatalf("expected %d records, got %v", len(want), records)
	}
	for i, w := range want {
		if records[i] != w {
			t.Fatalf("record %d: expected %q, got %q", i, w, records[i])
		}
	}
}

func TestParseCSVMissingColumn(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("ride_id,fare\n1,2\n"), "payment")
	if !errors.Is(err, ErrColumnNotFound) {
		t.Fatalf("expected ErrColumnNotFound, got %v", err)
	}
}

func TestParseCSVHeaderOnly(t *testing.T) {
	records, err := ParseCSV(strings.NewReader("payment\n"), "payment")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected no records, got %v", records)
	}
}

func TestParseCSVEmptyInput(t *testing.T) {
	if _, err := ParseCSV(strings.NewReader(""), "payment"); err == nil {
		t.Fatalf("expected error for empty input")
	}
}
