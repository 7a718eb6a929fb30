package client

import (
	"slices"
	"unicode"

	"github.com/tomz197/planetwars/internal/ai"
	"github.com/tomz197/planetwars/internal/config"
	"github.com/tomz197/planetwars/internal/input"
	loopconfig "github.com/tomz197/planetwars/internal/loop/config"
	"github.com/tomz197/planetwars/internal/mapgen"
	"github.com/tomz197/planetwars/internal/object"
	"github.com/tomz197/planetwars/internal/scoreboard"
	"github.com/tomz197/planetwars/internal/sim"
	"github.com/tomz197/planetwars/internal/sound"
)

// updateStartState handles the title screen.
func (c *Client) updateStartState() {
	in := c.state.Input
	switch {
	case in.Has(input.KeyEnter) || in.Has(input.KeySpace):
		c.state.setupRow = rowMapSize
		c.changeState(GameStateSetup)
	case in.Typed('s'):
		c.changeState(GameStateScoreboard)
	}
}

// updateSetupState edits the options of the next match.
func (c *Client) updateSetupState() {
	in := c.state.Input
	s := &c.state.Settings

	for _, ev := range in.Events {
		switch ev.Key {
		case input.KeyUp:
			c.state.setupRow = (c.state.setupRow + setupRows - 1) % setupRows
		case input.KeyDown, input.KeyTab:
			c.state.setupRow = (c.state.setupRow + 1) % setupRows
		case input.KeyLeft:
			c.cycleSetting(-1)
		case input.KeyRight:
			c.cycleSetting(1)
		case input.KeyBackspace:
			if c.state.setupRow == rowName {
				if r := []rune(s.PlayerName); len(r) > 0 {
					s.PlayerName = string(r[:len(r)-1])
				}
			}
		case input.KeyRune, input.KeySpace:
			if c.state.setupRow == rowName {
				s.PlayerName = config.SanitizeName(s.PlayerName + string(ev.Rune))
			}
		case input.KeyEscape:
			c.changeState(GameStateStart)
			return
		case input.KeyEnter:
			c.startMatch()
			return
		}
	}
}

// cycleSetting moves the value of the selected setup row by dir.
func (c *Client) cycleSetting(dir int) {
	s := &c.state.Settings
	switch c.state.setupRow {
	case rowMapSize:
		s.MapSize = step(mapgen.Sizes, s.MapSize, dir)
	case rowDifficulty:
		s.Difficulty = step(ai.Difficulties, s.Difficulty, dir)
	case rowSound:
		s.SoundPack = step(sound.Packs, s.SoundPack, dir)
		c.sound = sound.New(s.SoundPack, c.chunkWriter, c.log)
		c.sound.Play(sound.CueLaunch)
	}
}

// step returns the value dir positions away from cur in values, wrapping.
func step[T comparable](values []T, cur T, dir int) T {
	i := slices.Index(values, cur)
	if i < 0 {
		return values[0]
	}
	n := len(values)
	return values[((i+dir)%n+n)%n]
}

// startMatch creates a match from the current settings and switches to it.
func (c *Client) startMatch() {
	s := &c.state.Settings
	s.PlayerName = config.SanitizeName(s.PlayerName)
	if s.PlayerName == "" {
		s.PlayerName = config.DefaultSettings().PlayerName
	}
	if c.saveSettings != nil {
		if err := c.saveSettings(*s); err != nil {
			c.log.Warn("saving settings", "err", err)
		}
	}

	cfg := sim.DefaultConfig()
	cfg.MapSize = s.MapSize
	cfg.Difficulty = s.Difficulty
	cfg.SoundPack = s.SoundPack
	cfg.PlayerName = s.PlayerName

	c.sound = sound.New(s.SoundPack, c.chunkWriter, c.log)
	opts := []sim.Option{sim.WithLogger(c.log), sim.WithHooks(c.sound)}
	if c.seed != 0 {
		opts = append(opts, sim.WithSeed(c.seed))
	}

	c.state.clearEffects()
	c.state.Match = sim.New(cfg, opts...)
	c.state.controls.reset()
	c.state.eventLog = c.state.eventLog[:0]
	c.state.record = recordPending
	c.state.recorded = ""
	c.changeState(GameStatePlaying)
}

// abandonMatch drops a running match without recording it.
func (c *Client) abandonMatch() {
	if c.state.GameState == GameStatePlaying && c.state.Match != nil {
		c.log.Info("match abandoned", "time", c.state.Match.GameTime())
	}
}

// updatePlayingState applies commands and advances the match one frame.
func (c *Client) updatePlayingState() {
	g := c.state.Match
	if g == nil {
		c.changeState(GameStateStart)
		return
	}
	ctl := &c.state.controls
	in := c.state.Input

	if in.Has(input.KeyEscape) {
		c.abandonMatch()
		c.changeState(GameStateStart)
		return
	}

	for _, ev := range in.Events {
		switch {
		case ev.Key == input.KeyLeft || isRune(ev, 'a'):
			ctl.cycleSource(g, -1)
		case ev.Key == input.KeyRight || isRune(ev, 'd'):
			ctl.cycleSource(g, 1)
		case ev.Key == input.KeyUp || isRune(ev, 'w'):
			ctl.cycleTarget(g, -1)
		case ev.Key == input.KeyDown || isRune(ev, 's'):
			ctl.cycleTarget(g, 1)
		case ev.Key == input.KeySpace || ev.Key == input.KeyEnter:
			ctl.send(g)
		case isRune(ev, '+') || isRune(ev, '='):
			ctl.adjustFraction(1)
		case isRune(ev, '-') || isRune(ev, '_'):
			ctl.adjustFraction(-1)
		case isRune(ev, '1'):
			g.ActivateRecall(object.Player)
		case isRune(ev, '2'):
			g.ActivateProductionSurge(object.Player)
		case isRune(ev, '3'):
			ctl.shield(g)
		case isRune(ev, 'x'):
			g.ForceVictory()
		}
	}

	g.Update(c.state.delta.Seconds())
	phase := g.CheckGameOver()
	ctl.sync(g)

	c.handleMatchEvents(g.DrainEvents())
	c.spawnTrails(g)

	if phase.Terminal() {
		c.finishMatch(g)
	}
}

// isRune reports whether ev typed r, ignoring case.
func isRune(ev input.Event, r rune) bool {
	return ev.Key == input.KeyRune && unicode.ToLower(ev.Rune) == r
}

// handleMatchEvents feeds the HUD log and spawns combat effects.
func (c *Client) handleMatchEvents(events []sim.Event) {
	g := c.state.Match
	for _, ev := range events {
		c.state.logEvent(ev.String(), loopconfig.EventLogLines)

		p := g.Planet(ev.Planet)
		if p == nil {
			continue
		}
		switch ev.Kind {
		case sim.EventPlanetCaptured:
			object.SpawnBurst(p.X(), p.Y(), loopconfig.BurstParticles, loopconfig.BurstSpeed,
				loopconfig.BurstLifetime, ownerColor(ev.Side), c.state)
		case sim.EventAttackRepelled:
			object.SpawnBurst(p.X(), p.Y(), loopconfig.RepelParticles, loopconfig.BurstSpeed/2,
				loopconfig.BurstLifetime/2, ownerColor(ev.Defender), c.state)
		}
	}
}

// spawnTrails drops trail particles behind every fleet at a fixed rate.
func (c *Client) spawnTrails(g *sim.GameState) {
	c.state.trailTime -= c.state.delta.Seconds()
	if c.state.trailTime > 0 {
		return
	}
	c.state.trailTime = loopconfig.TrailInterval
	for _, f := range g.Fleets() {
		x, y := f.Position()
		vx, vy := f.Velocity()
		object.SpawnTrail(x, y, vx, vy, ownerColor(f.Owner()), c.state)
	}
}

// finishMatch records the result and shows it.
func (c *Client) finishMatch(g *sim.GameState) {
	c.state.Result = g.Result()
	entry := scoreboard.EntryFromResult(c.state.Settings.PlayerName, g.Config(), c.state.Result)
	c.server.RecordScore(c.handle.ID, entry)
	c.log.Info("match finished",
		"victory", c.state.Result.Victory,
		"score", entry.DisplayScore(),
		"time", c.state.Result.GameTime)
	c.changeState(GameStateGameOver)
}

// updateGameOverState handles the result screen.
func (c *Client) updateGameOverState() {
	in := c.state.Input
	switch {
	case in.Has(input.KeyEnter):
		c.changeState(GameStateScoreboard)
	case in.Has(input.KeySpace):
		c.changeState(GameStateSetup)
	case in.Has(input.KeyEscape):
		c.changeState(GameStateStart)
	}
}

// updateScoreboardState scrolls the stored score list.
func (c *Client) updateScoreboardState() {
	in := c.state.Input
	rows := 0
	if c.state.lobby != nil {
		rows = len(c.state.lobby.Scores)
	}
	switch {
	case in.Has(input.KeyUp) || in.Typed('w'):
		c.state.scrollTop = max(0, c.state.scrollTop-1)
	case in.Has(input.KeyDown) || in.Typed('s'):
		c.state.scrollTop = min(max(0, rows-1), c.state.scrollTop+1)
	case in.Has(input.KeyEscape) || in.Has(input.KeyEnter) || in.Has(input.KeyBackspace):
		c.changeState(GameStateStart)
	}
}
