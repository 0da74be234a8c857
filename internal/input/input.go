// Package input decodes raw terminal bytes into key presses.
package input

import (
	"bufio"
	"unicode/utf8"
)

// KeyType identifies a decoded key.
type KeyType int

const (
	KeyRune KeyType = iota // printable character, see Key.Rune
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyBackspace
	KeyEscape
	KeyTab
	KeyBackTab
	KeyCtrlC
)

// Key is one decoded key press.
type Key struct {
	Type KeyType
	Rune rune
}

// Stream delivers input bytes via a channel.
type Stream struct {
	ch     chan byte
	closed bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{ch: make(chan byte, 128)}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Closed reports whether the underlying reader has ended.
func (s *Stream) Closed() bool {
	return s.closed
}

// ReadKeys drains all available bytes from the stream (non-blocking) and
// decodes them.
func ReadKeys(s *Stream) []Key {
	var buf []byte

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	return Decode(buf)
}

// Decode turns a batch of raw bytes into keys. Unknown escape sequences
// are dropped; a lone ESC is reported as KeyEscape.
func Decode(buf []byte) []Key {
	var keys []Key
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' {
			if i+2 < len(buf) && (buf[i+1] == '[' || buf[i+1] == 'O') {
				if k, ok := csiKey(buf[i+2]); ok {
					keys = append(keys, k)
					i += 2
					continue
				}
				// Skip the rest of an unknown CSI sequence up to its final byte.
				j := i + 2
				for j < len(buf) && (buf[j] < 0x40 || buf[j] > 0x7e) {
					j++
				}
				i = j
				continue
			}
			keys = append(keys, Key{Type: KeyEscape})
			continue
		}

		switch b {
		case '\r', '\n':
			keys = append(keys, Key{Type: KeyEnter})
		case '\b', '\x7f':
			keys = append(keys, Key{Type: KeyBackspace})
		case '\t':
			keys = append(keys, Key{Type: KeyTab})
		case '\x03':
			keys = append(keys, Key{Type: KeyCtrlC})
		default:
			if b < 0x20 {
				continue
			}
			r, size := utf8.DecodeRune(buf[i:])
			if r == utf8.RuneError && size <= 1 {
				continue
			}
			keys = append(keys, Key{Type: KeyRune, Rune: r})
			i += size - 1
		}
	}
	return keys
}

func csiKey(b byte) (Key, bool) {
	switch b {
	case 'A':
		return Key{Type: KeyUp}, true
	case 'B':
		return Key{Type: KeyDown}, true
	case 'C':
		return Key{Type: KeyRight}, true
	case 'D':
		return Key{Type: KeyLeft}, true
	case 'Z':
		return Key{Type: KeyBackTab}, true
	}
	return Key{}, false
}
