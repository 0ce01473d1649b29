package vpr

import (
	"errors"
	"testing"
)

// TestTruthTable_Validate tests cube format checking
func TestTruthTable_Validate(t *testing.T) {
	tests := []struct {
		name    string
		tt      TruthTable
		wantErr bool
	}{
		{"empty table", TruthTable{NumInputs: 2}, false},
		{"single minterm", TruthTable{NumInputs: 2, Lines: []string{"111"}}, false},
		{"dont-care bits", TruthTable{NumInputs: 4, Lines: []string{"1--01", "0-1-1"}}, false},
		{"off-set cover", TruthTable{NumInputs: 2, Lines: []string{"000", "110"}}, false},
		{"short line", TruthTable{NumInputs: 3, Lines: []string{"011"}}, true},
		{"long line", TruthTable{NumInputs: 2, Lines: []string{"0111"}}, true},
		{"bad cube char", TruthTable{NumInputs: 2, Lines: []string{"1x1"}}, true},
		{"bad output char", TruthTable{NumInputs: 2, Lines: []string{"11-"}}, true},
		{"mixed polarity", TruthTable{NumInputs: 2, Lines: []string{"111", "000"}}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.tt.Validate()
			if tc.wantErr && err == nil {
				t.Error("expected validation error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
			if tc.wantErr && !errors.Is(err, ErrBadTruthTable) {
				t.Errorf("error should wrap ErrBadTruthTable, got %v", err)
			}
		})
	}
}

// TestTruthTable_Evaluate tests cube matching for on-set and off-set covers
func TestTruthTable_Evaluate(t *testing.T) {
	// f(a, b) = a AND b listed as an on-set
	and := TruthTable{NumInputs: 2, Lines: []string{"111"}}
	// f(a, b) = a OR b listed as an off-set (only 00 maps to 0)
	or := TruthTable{NumInputs: 2, Lines: []string{"000"}}

	cases := []struct {
		a, b    bool
		wantAnd bool
		wantOr  bool
	}{
		{false, false, false, false},
		{false, true, false, true},
		{true, false, false, true},
		{true, true, true, true},
	}
	for _, c := range cases {
		if got := and.Evaluate([]bool{c.a, c.b}); got != c.wantAnd {
			t.Errorf("AND(%v, %v) = %v, want %v", c.a, c.b, got, c.wantAnd)
		}
		if got := or.Evaluate([]bool{c.a, c.b}); got != c.wantOr {
			t.Errorf("OR(%v, %v) = %v, want %v", c.a, c.b, got, c.wantOr)
		}
	}
}

// TestTruthTable_EvaluateDontCare tests that unspecified bits match both values
func TestTruthTable_EvaluateDontCare(t *testing.T) {
	tt := TruthTable{NumInputs: 3, Lines: []string{"1--1"}}
	for _, b := range []bool{false, true} {
		for _, c := range []bool{false, true} {
			if !tt.Evaluate([]bool{true, b, c}) {
				t.Errorf("cube 1-- should match inputs {true, %v, %v}", b, c)
			}
			if tt.Evaluate([]bool{false, b, c}) {
				t.Errorf("cube 1-- should not match inputs {false, %v, %v}", b, c)
			}
		}
	}
}

// TestAtomNetlist_NetByName tests net name resolution
func TestAtomNetlist_NetByName(t *testing.T) {
	n := NewAtomNetlist()
	a := n.AddNet("net_a")
	b := n.AddNet("net_b")

	id, err := n.NetByName("net_a")
	if err != nil {
		t.Fatalf("NetByName(net_a) failed: %v", err)
	}
	if id != a {
		t.Errorf("expected net ID %d, got %d", a, id)
	}
	if n.Net(b).Name != "net_b" {
		t.Errorf("expected net name net_b, got %q", n.Net(b).Name)
	}

	_, err = n.NetByName("missing")
	if !errors.Is(err, ErrNetNotFound) {
		t.Errorf("expected ErrNetNotFound, got %v", err)
	}
}

// TestAtomNetlist_BlockIDs tests that block IDs are dense and ordered
func TestAtomNetlist_BlockIDs(t *testing.T) {
	n := NewAtomNetlist()
	for i := 0; i < 5; i++ {
		id := n.AddBlock(AtomBlock{Name: "blk", Model: "lut4"})
		if int(id) != i {
			t.Errorf("expected block ID %d, got %d", i, id)
		}
	}
	if n.NumBlocks() != 5 {
		t.Errorf("expected 5 blocks, got %d", n.NumBlocks())
	}
	ids := n.Blocks()
	for i, id := range ids {
		if int(id) != i {
			t.Errorf("Blocks()[%d] = %d, want %d", i, id, i)
		}
	}
}
