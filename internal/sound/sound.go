// Package sound binds match triggers to sound packs. A terminal has no
// mixer, so each cue is a short pattern of bell characters written to the
// session.
package sound

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/tomz197/planetwars/internal/sim"
)

// Cue is a sound trigger.
type Cue int

const (
	CueLaunch Cue = iota
	CueConquest
	CueRepelled
	CueVictory
	CueDefeat
)

// DefaultPack is used when no pack, or an unknown one, is requested.
const DefaultPack = "default"

// ErrUnknownSoundPack is returned by ParsePack for names without a pack.
var ErrUnknownSoundPack = errors.New("unknown sound pack")

// packs maps a pack name to the bell pattern of each cue it plays.
// Missing cues stay silent.
var packs = map[string]map[Cue]string{
	"default": {
		CueLaunch:   "\a",
		CueConquest: "\a\a",
		CueRepelled: "\a",
		CueVictory:  "\a\a\a",
		CueDefeat:   "\a",
	},
	"classical": {
		CueConquest: "\a\a\a",
		CueRepelled: "\a\a",
	},
	"silly": {
		CueLaunch:   "\a",
		CueConquest: "\a\a\a\a",
		CueRepelled: "\a\a",
	},
	"none": {},
}

// Packs lists the selectable pack names in menu order.
var Packs = []string{"default", "classical", "silly", "none"}

// ParsePack normalises a pack name.
func ParsePack(name string) (string, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if _, ok := packs[n]; !ok {
		return DefaultPack, fmt.Errorf("%w: %q", ErrUnknownSoundPack, name)
	}
	return n, nil
}

// Player plays a pack on a writer. It implements sim.Hooks.
type Player struct {
	mu   sync.Mutex
	name string
	cues map[Cue]string
	w    io.Writer
	log  *log.Logger
}

// New returns the player for the named pack writing to w. Unknown names fall
// back to the default pack with a warning. A nil writer discards output and
// a nil logger disables logging.
func New(name string, w io.Writer, logger *log.Logger) *Player {
	if w == nil {
		w = io.Discard
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	pack, err := ParsePack(name)
	if err != nil {
		logger.Warn("falling back to default sound pack", "err", err)
	}
	return &Player{
		name: pack,
		cues: packs[pack],
		w:    w,
		log:  logger,
	}
}

// Name returns the pack being played.
func (p *Player) Name() string { return p.name }

// Play writes the pattern of a cue, if the pack has one.
func (p *Player) Play(c Cue) {
	pattern, ok := p.cues[c]
	if !ok {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if _, err := io.WriteString(p.w, pattern); err != nil {
		p.log.Debug("sound write failed", "pack", p.name, "err", err)
	}
}

// FleetLaunched plays the launch cue.
func (p *Player) FleetLaunched() { p.Play(CueLaunch) }

// AttackSucceeded plays the conquest cue.
func (p *Player) AttackSucceeded() { p.Play(CueConquest) }

// AttackFailed plays the repelled cue.
func (p *Player) AttackFailed() { p.Play(CueRepelled) }

// GameVictory plays the victory cue.
func (p *Player) GameVictory() { p.Play(CueVictory) }

// GameDefeat plays the defeat cue.
func (p *Player) GameDefeat() { p.Play(CueDefeat) }

// Compile-time check that Player implements sim.Hooks.
var _ sim.Hooks = (*Player)(nil)
