package input

import (
	"bufio"
)

// Key identifies a decoded key press.
type Key int

const (
	KeyRune Key = iota // Printable character, see Event.Rune
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeySpace
	KeyTab
	KeyBackspace
	KeyEscape
	KeyInterrupt // Ctrl+C or Ctrl+D
)

// Event is a single key press.
type Event struct {
	Key  Key
	Rune rune
}

// Input holds the key presses received since the previous frame.
type Input struct {
	Events  []Event
	Pressed []byte // Raw bytes, for activity tracking
	Closed  bool   // The underlying reader is gone
}

// Has reports whether key was pressed this frame.
func (in Input) Has(key Key) bool {
	for _, e := range in.Events {
		if e.Key == key {
			return true
		}
	}
	return false
}

// Typed reports whether one of the given characters was typed, ignoring case.
func (in Input) Typed(chars ...rune) bool {
	for _, e := range in.Events {
		if e.Key != KeyRune {
			continue
		}
		for _, c := range chars {
			if lower(e.Rune) == lower(c) {
				return true
			}
		}
	}
	return false
}

// Digit returns the first digit typed this frame, or -1.
func (in Input) Digit() int {
	for _, e := range in.Events {
		if e.Key == KeyRune && e.Rune >= '0' && e.Rune <= '9' {
			return int(e.Rune - '0')
		}
	}
	return -1
}

func lower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

// Stream delivers input bytes via a channel.
type Stream struct {
	ch chan byte
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

// ReadInput drains all available bytes from the stream without blocking
// and decodes them into key events.
func ReadInput(s *Stream) Input {
	var in Input
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				in.Closed = true
				in.Events = Parse(in.Pressed)
				return in
			}
			in.Pressed = append(in.Pressed, b)
		default:
			in.Events = Parse(in.Pressed)
			return in
		}
	}
}

// ResetKeyInput discards bytes that arrived but were not read yet, so a
// key held across a screen change does not act twice.
func ResetKeyInput(s *Stream) {
	for {
		select {
		case _, ok := <-s.ch:
			if !ok {
				return
			}
		default:
			return
		}
	}
}

// Parse decodes raw terminal bytes into key events. Arrow keys arrive as
// ESC [ A..D; a lone ESC is the escape key.
func Parse(buf []byte) []Event {
	var events []Event
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' {
			if i+2 < len(buf) && (buf[i+1] == '[' || buf[i+1] == 'O') {
				key, ok := arrowKey(buf[i+2])
				if ok {
					events = append(events, Event{Key: key})
					i += 2
					continue
				}
			}
			events = append(events, Event{Key: KeyEscape})
			continue
		}

		switch b {
		case '\r', '\n':
			events = append(events, Event{Key: KeyEnter})
		case ' ':
			events = append(events, Event{Key: KeySpace, Rune: ' '})
		case '\t':
			events = append(events, Event{Key: KeyTab})
		case '\b', '\x7f':
			events = append(events, Event{Key: KeyBackspace})
		case '\x03', '\x04':
			events = append(events, Event{Key: KeyInterrupt})
		default:
			if b >= 0x20 && b < 0x7f {
				events = append(events, Event{Key: KeyRune, Rune: rune(b)})
			}
		}
	}
	return events
}

func arrowKey(b byte) (Key, bool) {
	switch b {
	case 'A':
		return KeyUp, true
	case 'B':
		return KeyDown, true
	case 'C':
		return KeyRight, true
	case 'D':
		return KeyLeft, true
	}
	return 0, false
}
