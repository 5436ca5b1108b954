package suggest

import "testing"

func TestColumnMeasurer(t *testing.T) {
	testCases := []struct {
		description string
		text        string
		offset      int
		want        Caret
	}{
		{"start", "hello", 0, Caret{0, 0}},
		{"ascii", "hello :fi", 6, Caret{0, 6}},
		{"second line", "one\ntwo :x", 8, Caret{1, 4}},
		{"wide glyph", "🔥🔥 :x", 3, Caret{0, 5}},
		{"cjk", "日本 :x", 3, Caret{0, 5}},
		{"offset past end", "ab", 10, Caret{0, 2}},
		{"negative offset", "ab", -1, Caret{0, 0}},
		{"offset after newline", "ab\n", 3, Caret{1, 0}},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			if got := ColumnMeasurer(tc.text, tc.offset); got != tc.want {
				t.Errorf("ColumnMeasurer(%q, %d) = %+v, want %+v", tc.text, tc.offset, got, tc.want)
			}
		})
	}
}
