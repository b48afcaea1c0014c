package termdeck

import "testing"

func TestKeyMap_Lookup(t *testing.T) {
	km := NewKeyMap(3, 5)
	tests := []struct {
		key  string
		want int
		ok   bool
	}{
		{"1", 0, true},
		{"5", 4, true},
		{"q", 5, true},
		{"e", 7, true},
		{"g", 14, true},
		{"6", 0, false},
		{"z", 0, false},
	}
	for _, tt := range tests {
		got, ok := km.Lookup(tt.key)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("Lookup(%q) = %d, %v; want %d, %v", tt.key, got, ok, tt.want, tt.ok)
		}
	}
}

func TestKeyMap_LargerThanKeyboard(t *testing.T) {
	km := NewKeyMap(5, 9)
	if len(km.Keys) != 45 {
		t.Fatalf("Keys: %d, want 45", len(km.Keys))
	}
	if km.Keys[8].Enabled() {
		t.Error("column 8 has no keyboard key and should be disabled")
	}
	if km.Keys[44].Enabled() {
		t.Error("row 4 has no keyboard row and should be disabled")
	}
	if got := km.Grid.Help().Key; got != "12345678 qwertyui asdfghjk zxcvbnm," {
		t.Errorf("Grid help = %q", got)
	}
}

func TestKeyMap_Help(t *testing.T) {
	km := NewKeyMap(3, 5)
	if got := km.Grid.Help().Key; got != "12345 qwert asdfg" {
		t.Errorf("Grid help = %q", got)
	}
	if len(km.ShortHelp()) != 2 || len(km.FullHelp()) != 2 {
		t.Error("unexpected help layout")
	}
}
