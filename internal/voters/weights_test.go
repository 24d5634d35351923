package voters

import "testing"

func TestWeight_Default(t *testing.T) {
	w := New(nil)
	if got := w.Weight("aabbcc"); got != 1 {
		t.Errorf("weight = %d, want 1", got)
	}
	if w.Elevated("aabbcc") {
		t.Error("unknown voter should not be elevated")
	}
}

func TestWeight_Override(t *testing.T) {
	w := New(map[string]int64{"cafe01": 5})

	if got := w.Weight("cafe01"); got != 5 {
		t.Errorf("weight = %d, want 5", got)
	}
	if !w.Elevated("cafe01") {
		t.Error("overridden voter should be elevated")
	}
	if got := w.Weight("other"); got != 1 {
		t.Errorf("non-overridden weight = %d, want 1", got)
	}
}

func TestNew_IgnoresUselessOverrides(t *testing.T) {
	w := New(map[string]int64{"a1": 1, "b2": 0, "c3": -4, "d4": 2})

	for _, id := range []string{"a1", "b2", "c3"} {
		if w.Elevated(id) {
			t.Errorf("voter %s with weight <= 1 should not be elevated", id)
		}
		if got := w.Weight(id); got != 1 {
			t.Errorf("weight(%s) = %d, want 1", id, got)
		}
	}
	if got := w.Weight("d4"); got != 2 {
		t.Errorf("weight(d4) = %d, want 2", got)
	}
}

func TestParseOverrides(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    map[string]int64
		wantErr bool
	}{
		{"empty", "", map[string]int64{}, false},
		{"single", "cafe01:5", map[string]int64{"cafe01": 5}, false},
		{"multiple", "cafe01:5,beef02:3", map[string]int64{"cafe01": 5, "beef02": 3}, false},
		{"whitespace", " cafe01 : 5 , beef02 : 3 ", map[string]int64{"cafe01": 5, "beef02": 3}, false},
		{"trailing comma", "cafe01:5,", map[string]int64{"cafe01": 5}, false},
		{"missing colon", "cafe01", nil, true},
		{"non-numeric weight", "cafe01:lots", nil, true},
		{"weight below two", "cafe01:1", nil, true},
		{"negative weight", "cafe01:-2", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseOverrides(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for id, weight := range tt.want {
				if got[id] != weight {
					t.Errorf("override[%s] = %d, want %d", id, got[id], weight)
				}
			}
		})
	}
}
