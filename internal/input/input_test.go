package input

import (
	"bufio"
	"slices"
	"strings"
	"testing"
	"time"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Key
	}{
		{"arrows", "\x1b[A\x1b[B\x1b[C\x1b[D", []Key{{Type: KeyUp}, {Type: KeyDown}, {Type: KeyRight}, {Type: KeyLeft}}},
		{"ss3 arrows", "\x1bOA", []Key{{Type: KeyUp}}},
		{"text", "hi!", []Key{{Rune: 'h'}, {Rune: 'i'}, {Rune: '!'}}},
		{"utf8", "é", []Key{{Rune: 'é'}}},
		{"enter", "\r\n", []Key{{Type: KeyEnter}, {Type: KeyEnter}}},
		{"backspace", "\x7f\b", []Key{{Type: KeyBackspace}, {Type: KeyBackspace}}},
		{"lone escape", "\x1b", []Key{{Type: KeyEscape}}},
		{"escape then key", "\x1bq", []Key{{Type: KeyEscape}, {Rune: 'q'}}},
		{"tabs", "\t\x1b[Z", []Key{{Type: KeyTab}, {Type: KeyBackTab}}},
		{"ctrl-c", "\x03", []Key{{Type: KeyCtrlC}}},
		{"unknown csi dropped", "\x1b[1;5Cx", []Key{{Rune: 'x'}}},
		{"other control dropped", "\x01a", []Key{{Rune: 'a'}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decode([]byte(tt.in))
			if !slices.Equal(got, tt.want) {
				t.Errorf("Decode(%q) = %v, expected %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestStream(t *testing.T) {
	s := StartStream(bufio.NewReader(strings.NewReader("ab\x1b[A")))

	// Let the reader goroutine queue everything so the escape sequence
	// arrives in a single batch.
	time.Sleep(50 * time.Millisecond)
	keys := ReadKeys(s)

	want := []Key{{Rune: 'a'}, {Rune: 'b'}, {Type: KeyUp}}
	if !slices.Equal(keys, want) {
		t.Errorf("expected %v, got %v", want, keys)
	}
	if !s.Closed() {
		t.Error("expected stream to close at EOF")
	}
}
