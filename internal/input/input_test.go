package input

import (
	"bufio"
	"strings"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []Event
	}{
		{"arrows", "\x1b[A\x1b[B\x1b[C\x1b[D", []Event{{Key: KeyUp}, {Key: KeyDown}, {Key: KeyRight}, {Key: KeyLeft}}},
		{"application arrows", "\x1bOA", []Event{{Key: KeyUp}}},
		{"lone escape", "\x1b", []Event{{Key: KeyEscape}}},
		{"enter both forms", "\r\n", []Event{{Key: KeyEnter}, {Key: KeyEnter}}},
		{"space and letters", " a1", []Event{{Key: KeySpace, Rune: ' '}, {Key: KeyRune, Rune: 'a'}, {Key: KeyRune, Rune: '1'}}},
		{"backspace and delete", "\b\x7f", []Event{{Key: KeyBackspace}, {Key: KeyBackspace}}},
		{"interrupt", "\x03", []Event{{Key: KeyInterrupt}}},
		{"control bytes dropped", "\x01\x02", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Parse([]byte(tc.in))
			if len(got) != len(tc.want) {
				t.Fatalf("expected %d events, got %d: %+v", len(tc.want), len(got), got)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("event %d: expected %+v, got %+v", i, tc.want[i], got[i])
				}
			}
		})
	}
}

func TestInput_Helpers(t *testing.T) {
	in := Input{Events: Parse([]byte("X3\x1b[A"))}
	if !in.Has(KeyUp) || in.Has(KeyDown) {
		t.Fatal("expected only up arrow")
	}
	if !in.Typed('x') {
		t.Fatal("expected case-insensitive match for x")
	}
	if in.Typed('q') {
		t.Fatal("did not expect q")
	}
	if in.Digit() != 3 {
		t.Fatalf("expected digit 3, got %d", in.Digit())
	}
	if (Input{}).Digit() != -1 {
		t.Fatal("expected -1 without digits")
	}
}

func TestReadInput_ReportsClosedStream(t *testing.T) {
	s := StartStream(bufio.NewReader(strings.NewReader("q")))

	var events []Event
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		in := ReadInput(s)
		events = append(events, in.Events...)
		if in.Closed {
			if len(events) != 1 || events[0].Rune != 'q' {
				t.Fatalf("expected a single q, got %+v", events)
			}
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("expected the stream to close after EOF")
}
