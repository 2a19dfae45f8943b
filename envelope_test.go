package bos

import "testing"

func TestDeclaredSize(t *testing.T) {
	cases := []struct {
		name string
		buf  []byte
		want uint32
	}{
		{"nil", nil, 0},
		{"short", []byte{0x01, 0x02, 0x03}, 0},
		{"header only", []byte{0x05, 0x00, 0x00, 0x00}, 5},
		{"valid envelope", []byte{0x05, 0x00, 0x00, 0x00, 0x00}, 5},
		// Advisory: the header is reported even when the rest is garbage.
		{"lying header", []byte{0xFF, 0xFF, 0xFF, 0x7F, 0xAA}, 0x7FFFFFFF},
	}
	for _, tc := range cases {
		if got := DeclaredSize(tc.buf); got != tc.want {
			t.Fatalf("%s: DeclaredSize = %d, want %d", tc.name, got, tc.want)
		}
	}
}
