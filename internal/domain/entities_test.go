package domain

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		input string
		want  Mode
	}{
		{"en", ModeLatin},
		{"latin", ModeLatin},
		{"zh", ModeSegmented},
		{" Segmented ", ModeSegmented},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.input)
		if err != nil || got != tt.want {
			t.Errorf("ParseMode(%q) = %v, %v; want %v", tt.input, got, err, tt.want)
		}
	}

	if _, err := ParseMode("ja"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestFrequencyTable(t *testing.T) {
	table := NewFrequencyTable()
	for _, tok := range []string{"b", "a", "", "b", "c", "a", "b"} {
		table.Add(tok)
	}

	if table.Len() != 3 {
		t.Errorf("expected 3 distinct tokens, got %d", table.Len())
	}
	if table.Count("") != 0 {
		t.Error("empty token must not be counted")
	}
	want := []Entry{{Token: "b", Count: 3}, {Token: "a", Count: 2}, {Token: "c", Count: 1}}
	if got := table.Entries(); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestHint(t *testing.T) {
	err := &HintError{Err: ErrMissingCapability, Hint: "install it"}
	if !errors.Is(err, ErrMissingCapability) {
		t.Error("HintError should unwrap to its cause")
	}
	if Hint(err) != "install it" {
		t.Errorf("unexpected hint %q", Hint(err))
	}
	if Hint(ErrInputNotFound) != "" {
		t.Error("plain errors carry no hint")
	}
}
