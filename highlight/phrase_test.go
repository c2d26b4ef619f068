package highlight

import "testing"

func TestWiden(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		start      int
		length     int
		phrases    []string
		wantStart  int
		wantLength int
	}{
		{"no phrases", peppers, 17, 3, nil, 17, 3},
		{"first token of phrase", peppers, 17, 3, []string{"red pepper"}, 17, 10},
		{"last token of phrase", peppers, 21, 6, []string{"red pepper"}, 17, 10},
		{"case insensitive", "A Red Pepper dish", 2, 3, []string{"red pepper"}, 2, 10},
		{"match outside phrase", peppers, 35, 5, []string{"red pepper"}, 35, 5},
		{"second occurrence", "red apple and red pepper", 14, 3, []string{"red pepper"}, 14, 10},
		{"later phrase", peppers, 35, 5, []string{"red pepper", "spicy and"}, 35, 9},
		{"empty phrase ignored", peppers, 17, 3, []string{""}, 17, 3},
		{"case folding changes length", "İstanbul red pepper", 12, 3, []string{"red pepper"}, 12, 3},
		{"match longer than phrase", peppers, 17, 20, []string{"red"}, 17, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, l := Widen(tt.content, tt.start, tt.length, tt.phrases)
			if s != tt.wantStart || l != tt.wantLength {
				t.Errorf("Widen() = (%d, %d), want (%d, %d)", s, l, tt.wantStart, tt.wantLength)
			}
		})
	}
}
