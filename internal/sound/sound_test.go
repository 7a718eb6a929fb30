package sound

import (
	"bytes"
	"errors"
	"testing"
)

func TestParsePack(t *testing.T) {
	for _, name := range Packs {
		got, err := ParsePack(name)
		if err != nil || got != name {
			t.Fatalf("expected %s, got %s (%v)", name, got, err)
		}
	}
	if got, _ := ParsePack(" Silly "); got != "silly" {
		t.Fatalf("expected silly, got %s", got)
	}
	got, err := ParsePack("jazz")
	if !errors.Is(err, ErrUnknownSoundPack) {
		t.Fatalf("expected ErrUnknownSoundPack, got %v", err)
	}
	if got != DefaultPack {
		t.Fatalf("expected fallback %s, got %s", DefaultPack, got)
	}
}

func TestNew_UnknownFallsBackToDefault(t *testing.T) {
	p := New("jazz", nil, nil)
	if p.Name() != DefaultPack {
		t.Fatalf("expected %s, got %s", DefaultPack, p.Name())
	}
	p.GameVictory()
}

func TestPlayer_Cues(t *testing.T) {
	cases := []struct {
		pack string
		play func(*Player)
		want string
	}{
		{"default", (*Player).FleetLaunched, "\a"},
		{"default", (*Player).AttackSucceeded, "\a\a"},
		{"default", (*Player).AttackFailed, "\a"},
		{"default", (*Player).GameVictory, "\a\a\a"},
		{"default", (*Player).GameDefeat, "\a"},
		{"classical", (*Player).FleetLaunched, ""},
		{"classical", (*Player).AttackFailed, "\a\a"},
		{"silly", (*Player).AttackSucceeded, "\a\a\a\a"},
		{"silly", (*Player).GameDefeat, ""},
		{"none", (*Player).AttackSucceeded, ""},
	}
	for _, tc := range cases {
		t.Run(tc.pack, func(t *testing.T) {
			var buf bytes.Buffer
			tc.play(New(tc.pack, &buf, nil))
			if buf.String() != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, buf.String())
			}
		})
	}
}
