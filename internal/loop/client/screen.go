package client

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/tomz197/planetwars/internal/draw"
	"github.com/tomz197/planetwars/internal/loop/config"
	"github.com/tomz197/planetwars/internal/object"
	"github.com/tomz197/planetwars/internal/sim"
)

const (
	fleetTail   = 30.0 // Logical length of the line drawn behind a fleet
	fleetRadius = 6.0
	ringGap     = 6.0 // Distance between a planet rim and its selection ring
	hudWidth    = 36  // Columns inside the HUD panel
)

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	// On game state or inactivity transitions, do a full terminal clear
	// so UI elements from the previous state don't persist on screen.
	stateChanged := c.state.GameState != c.state.prevGameState
	inactiveChanged := c.state.isInactive != c.state.wasInactive
	if stateChanged || inactiveChanged {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.ForceRedraw()
		c.state.prevGameState = c.state.GameState
		c.state.wasInactive = c.state.isInactive
	}

	c.canvas.Clear()

	showMatch := c.state.GameState == GameStatePlaying && c.state.Match != nil && !c.state.isInactive
	if showMatch {
		c.drawMatch(c.state.Match)

		ctx := object.DrawContext{Canvas: c.canvas}
		for _, e := range c.state.effects {
			if err := e.Draw(ctx); err != nil {
				return err
			}
		}
	}

	// Render canvas to terminal
	c.canvas.Render(c.chunkWriter)

	// Draw border when terminal exceeds max render resolution
	c.canvas.RenderBorder(c.chunkWriter)

	if showMatch {
		c.drawPlanetLabels(c.state.Match)
	}

	// Draw UI overlay
	c.drawUI()

	return c.chunkWriter.Flush()
}

// drawMatch draws planets, selection rings, shields and fleets.
func (c *Client) drawMatch(g *sim.GameState) {
	cv := c.canvas

	for _, p := range g.Planets() {
		cv.SetColor(ownerColor(p.Owner()))
		cv.DrawCircle(p.X(), p.Y(), p.Radius(), true)
	}

	if src := g.Planet(g.SelectedPlanet()); src != nil {
		cv.SetColor(draw.Yellow)
		cv.DrawRing(src.X(), src.Y(), src.Radius()+ringGap, 2)
	}
	if dst := g.Planet(c.state.controls.target); dst != nil {
		cv.SetColor(draw.Magenta)
		cv.DrawRing(dst.X(), dst.Y(), dst.Radius()+ringGap, 2)
	}

	for _, side := range []object.Owner{object.Player, object.Enemy} {
		shield := g.Abilities(side).Get(object.Shield)
		p := g.Planet(shield.Target())
		if !shield.IsActive() || p == nil {
			continue
		}
		if remaining := shield.TimeRemaining(); remaining < config.ShieldBlinkThreshold &&
			!object.ShouldRenderBlink(remaining, config.ShieldBlinkFrequency) {
			continue
		}
		cv.SetColor(draw.Green)
		cv.DrawRing(p.X(), p.Y(), p.Radius()+2*ringGap, 1)
	}

	for _, f := range g.Fleets() {
		x, y := f.Position()
		vx, vy := f.Velocity()
		cv.SetColor(ownerColor(f.Owner()))
		if speed := math.Hypot(vx, vy); speed > 0 {
			tail := draw.Point{X: x - vx/speed*fleetTail, Y: y - vy/speed*fleetTail}
			cv.DrawLine(tail, draw.Point{X: x, Y: y})
		}
		cv.DrawCircle(x, y, fleetRadius, true)
	}
}

// drawPlanetLabels writes ship counts on every planet and the names of the
// source and target planets below them.
func (c *Client) drawPlanetLabels(g *sim.GameState) {
	for _, p := range g.Planets() {
		col, row := c.canvas.LogicalToTerminal(p.X(), p.Y())
		c.textCentered(col, row, c.styles.owner(p.Owner()).Render(strconv.Itoa(p.Ships())))
	}

	label := func(id object.PlanetID, style lipgloss.Style) {
		p := g.Planet(id)
		if p == nil {
			return
		}
		col, row := c.canvas.LogicalToTerminal(p.X(), p.Y()+p.Radius()+2*ringGap)
		c.textCentered(col, row+1, style.Render(p.Name()))
	}
	label(g.SelectedPlanet(), c.styles.selected)
	label(c.state.controls.target, c.styles.warn)
}

// drawUI draws the text overlay of the current screen.
func (c *Client) drawUI() {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	if c.state.GameState == GameStateShutdown {
		c.drawShutdownScreen(centerX, centerY)
		return
	}

	if c.state.isInactive {
		c.drawInactivityScreen(centerX, centerY)
		return
	}

	switch c.state.GameState {
	case GameStateStart:
		c.drawStartScreen(centerX, centerY)
	case GameStateSetup:
		c.drawSetupScreen(centerX, centerY)
	case GameStatePlaying:
		c.drawPlayingHUD(termWidth, termHeight)
	case GameStateGameOver:
		c.drawGameOverScreen(centerX, centerY)
	case GameStateScoreboard:
		c.drawScoreboardScreen(centerX, termHeight)
	}
}

// text writes s at a 1-based canvas position and marks the cells it covers
// so the canvas repaints them once the text changes.
func (c *Client) text(col, row int, s string) {
	if row < 1 || row > c.canvas.TerminalHeight() {
		return
	}
	col = max(col, 1)
	c.chunkWriter.WriteAt(col, row, s)
	c.canvas.MarkTextDirty(col, row, lipgloss.Width(s))
}

// textCentered writes s centered on column center.
func (c *Client) textCentered(center, row int, s string) {
	c.text(center-lipgloss.Width(s)/2, row, s)
}

// block writes a multi-line string with its top-left corner at (col, row).
func (c *Client) block(col, row int, s string) {
	for i, line := range lines(s) {
		c.text(col, row+i, line)
	}
}

// blockCentered writes a multi-line string centered on column center.
func (c *Client) blockCentered(center, row int, s string) {
	c.block(center-lipgloss.Width(s)/2, row, s)
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	c.textCentered(centerX, centerY-2, c.styles.warn.Render("INACTIVITY WARNING"))

	msg := fmt.Sprintf(
		"You have been inactive for too long. You will be disconnected in %d seconds.",
		int(config.InactivityDisconnectUser-time.Since(c.lastInput).Seconds()),
	)
	c.textCentered(centerX, centerY, c.styles.text.Render(msg))
	c.textCentered(centerX, centerY+2, c.styles.dim.Render("Press any key to continue"))
}

var titleArt = []string{
	" ___ _      _   _  _ ___ _____  __      ___   ___  ___ ",
	"| _ \\ |    /_\\ | \\| | __|_   _| \\ \\    / /_\\ | _ \\/ __|",
	"|  _/ |__ / _ \\| .` | _|  | |    \\ \\/\\/ / _ \\|   /\\__ \\",
	"|_| |____/_/ \\_\\_|\\_|___| |_|     \\_/\\_/_/ \\_\\_|_\\|___/",
}

// drawStartScreen draws the title screen.
func (c *Client) drawStartScreen(centerX, centerY int) {
	st := c.styles
	row := centerY - 10

	c.blockCentered(centerX, row, st.title.Render(strings.Join(titleArt, "\n")))
	row += len(titleArt) + 1
	c.textCentered(centerX, row, st.dim.Render("~ Conquer the galaxy over SSH ~"))

	row += 2
	c.textCentered(centerX, row, st.heading.Render("Controls"))
	controls := []string{
		"A D / < >  . . . .  Source planet",
		"W S / ^ v  . . . .  Target planet",
		"SPACE  . . . . . . . . Send fleet",
		"+ / -  . . . . . . . . Send share",
		"1 2 3  . . Recall  Surge  Shield",
		"ESC  . . . . . . . . . .  Give up",
	}
	for i, line := range controls {
		c.textCentered(centerX, row+1+i, st.text.Render(line))
	}

	row += len(controls) + 2
	menu := st.key.Render("ENTER") + st.text.Render(" play   ") +
		st.key.Render("S") + st.text.Render(" scores   ") +
		st.key.Render("Q") + st.text.Render(" quit")
	c.textCentered(centerX, row, menu)

	lobby := c.state.lobby
	if lobby == nil {
		return
	}
	row += 2
	online := fmt.Sprintf("%d commander(s) online", lobby.Players)
	c.textCentered(centerX, row, st.dim.Render(online))
	for i, e := range lobby.Leaderboard {
		if i == 3 {
			break
		}
		line := fmt.Sprintf("%d. %-*s %5s", i+1, config.MaxUsernameLength, e.PlayerName, e.DisplayScore())
		c.textCentered(centerX, row+2+i, st.text.Render(line))
	}
}

// drawSetupScreen draws the match options.
func (c *Client) drawSetupScreen(centerX, centerY int) {
	st := c.styles
	s := c.state.Settings

	c.textCentered(centerX, centerY-7, st.title.Render("NEW MATCH"))

	name := s.PlayerName
	if c.state.setupRow == rowName {
		name += "_"
	}
	values := [setupRows][2]string{
		rowName:       {"Commander", name},
		rowMapSize:    {"Map size", fmt.Sprintf("< %s >  %d planets", s.MapSize, s.MapSize.PlanetCount())},
		rowDifficulty: {"Difficulty", fmt.Sprintf("< %s >", s.Difficulty)},
		rowSound:      {"Sound", fmt.Sprintf("< %s >", s.SoundPack)},
	}

	var b strings.Builder
	for i, v := range values {
		line := fmt.Sprintf("%-12s %-24s", v[0], v[1])
		if setupRow(i) == c.state.setupRow {
			b.WriteString(st.selected.Render("> " + line))
		} else {
			b.WriteString(st.text.Render("  " + line))
		}
		if i < len(values)-1 {
			b.WriteString("\n\n")
		}
	}
	c.blockCentered(centerX, centerY-4, st.panel.Render(b.String()))

	hint := st.key.Render("^ v") + st.dim.Render(" choose   ") +
		st.key.Render("< >") + st.dim.Render(" change   ") +
		st.key.Render("ENTER") + st.dim.Render(" launch   ") +
		st.key.Render("ESC") + st.dim.Render(" back")
	c.textCentered(centerX, centerY+7, hint)
}

// drawPlayingHUD draws the match panel in the top-left corner, where the map
// keeps no planets, and the key help on the last row.
func (c *Client) drawPlayingHUD(termWidth, termHeight int) {
	g := c.state.Match
	st := c.styles

	var b strings.Builder
	minutes, seconds := int(g.GameTime())/60, int(g.GameTime())%60
	fmt.Fprintf(&b, "%s %s\n", st.title.Render("PLANET WARS"), st.dim.Render(fmt.Sprintf("%02d:%02d", minutes, seconds)))

	for _, side := range []object.Owner{object.Player, object.Enemy} {
		s := g.PlayerStats(side)
		name := side.String()
		if side == object.Player {
			name = c.state.Settings.PlayerName
		}
		fmt.Fprintf(&b, "%s %s\n",
			st.owner(side).Render(fmt.Sprintf("%-10s", truncate(name, 10))),
			st.text.Render(fmt.Sprintf("%2dp %4d ships +%d", s.PlanetCount, s.TotalShips, s.ProductionRate)))
	}
	fmt.Fprintf(&b, "%s\n", st.dim.Render(fmt.Sprintf("Penalties %d   Send %d%%",
		g.TacticalPenalties(), int(math.Round(c.state.controls.fraction*100)))))

	planetLine := func(prefix string, id object.PlanetID) string {
		p := g.Planet(id)
		if p == nil {
			return st.dim.Render(prefix + " -")
		}
		return st.text.Render(prefix+" ") + st.owner(p.Owner()).Render(truncate(fmt.Sprintf("%s (%d)", p.Name(), p.Ships()), hudWidth-5))
	}
	fmt.Fprintf(&b, "%s\n%s\n", planetLine("From", g.SelectedPlanet()), planetLine("To  ", c.state.controls.target))

	abilities := g.Abilities(object.Player)
	for i, kind := range object.AbilityKinds {
		fmt.Fprintf(&b, "%s %s\n", st.key.Render(fmt.Sprintf("[%d]", i+1)),
			st.text.Render(fmt.Sprintf("%-17s %s", kind, abilityStatus(abilities.Get(kind)))))
	}

	for i := 0; i < config.EventLogLines; i++ {
		line := ""
		if i < len(c.state.eventLog) {
			line = truncate(c.state.eventLog[i], hudWidth)
		}
		b.WriteString(st.dim.Render(line))
		if i < config.EventLogLines-1 {
			b.WriteByte('\n')
		}
	}

	c.block(1, 1, st.panel.Width(hudWidth+2).Render(b.String()))

	help := "A/D source  W/S target  SPACE send  +/- share  1 2 3 abilities  ESC give up"
	c.textCentered(termWidth/2, termHeight, st.dim.Render(truncate(help, termWidth)))
}

// abilityStatus describes an ability for the HUD.
func abilityStatus(a *object.Ability) string {
	switch {
	case a.IsAvailable():
		return "ready"
	case a.IsActive() && !a.IsInstant():
		return fmt.Sprintf("%ds", int(math.Ceil(a.TimeRemaining())))
	default:
		return "used"
	}
}

// drawGameOverScreen draws the result of the last match.
func (c *Client) drawGameOverScreen(centerX, centerY int) {
	st := c.styles
	r := c.state.Result
	row := centerY - 8

	if r.Victory {
		c.textCentered(centerX, row, st.good.Render("VICTORY"))
	} else {
		c.textCentered(centerX, row, st.bad.Render("DEFEAT"))
	}

	score := strconv.Itoa(r.Score)
	if r.Cheater {
		score = "CHEATER"
	}
	minutes, seconds := int(r.GameTime)/60, int(r.GameTime)%60
	stats := []string{
		fmt.Sprintf("%-18s %10s", "Score", score),
		fmt.Sprintf("%-18s %7d:%02d", "Time", minutes, seconds),
		fmt.Sprintf("%-18s %10d", "Planets held", r.PlanetsControlled),
		fmt.Sprintf("%-18s %10d", "Ships produced", r.ShipsProduced),
		fmt.Sprintf("%-18s %10d", "Battles won", r.BattlesWon),
		fmt.Sprintf("%-18s %10d", "Battles lost", r.BattlesLost),
	}
	c.blockCentered(centerX, row+2, st.panel.Render(st.text.Render(strings.Join(stats, "\n"))))

	var status string
	switch c.state.record {
	case recordPending:
		status = st.dim.Render("Saving score...")
	case recordFailed:
		status = st.warn.Render("Score could not be saved")
	case recordSaved:
		status = st.dim.Render("Score saved")
		if c.state.lobby != nil {
			if rank := c.state.lobby.Rank(c.state.recorded); rank > 0 {
				status = st.good.Render(fmt.Sprintf("#%d on the leaderboard", rank))
			}
		}
	}
	c.textCentered(centerX, row+len(stats)+5, status)

	hint := st.key.Render("SPACE") + st.dim.Render(" play again   ") +
		st.key.Render("ENTER") + st.dim.Render(" scores   ") +
		st.key.Render("ESC") + st.dim.Render(" menu")
	c.textCentered(centerX, row+len(stats)+7, hint)
}

// drawScoreboardScreen lists stored scores, best first and cheaters last.
func (c *Client) drawScoreboardScreen(centerX, termHeight int) {
	st := c.styles
	c.textCentered(centerX, 2, st.title.Render("HALL OF COMMANDERS"))

	lobby := c.state.lobby
	if lobby == nil || !lobby.Persistent {
		c.textCentered(centerX, 5, st.dim.Render("Scores are not stored on this server"))
		return
	}
	if len(lobby.Scores) == 0 {
		c.textCentered(centerX, 5, st.dim.Render("No matches recorded yet"))
		return
	}

	format := "%3s  %-*s %8s  %-7s %-6s %-6s %6s  %-14s"
	header := fmt.Sprintf(format, "#", config.MaxUsernameLength, "Name", "Score", "Result", "Map", "AI", "Time", "When")
	c.textCentered(centerX, 4, st.heading.Render(header))

	visible := max(termHeight-8, 1)
	top := min(c.state.scrollTop, max(len(lobby.Scores)-visible, 0))
	for i := 0; i < visible && top+i < len(lobby.Scores); i++ {
		e := lobby.Scores[top+i]
		result := "defeat"
		if e.Victory {
			result = "victory"
		}
		line := fmt.Sprintf(format,
			strconv.Itoa(top+i+1), config.MaxUsernameLength, truncate(e.PlayerName, config.MaxUsernameLength),
			e.DisplayScore(), result, e.MapSize, e.Difficulty,
			fmt.Sprintf("%d:%02d", int(e.GameTime)/60, int(e.GameTime)%60),
			humanize.Time(e.CreatedAt))
		style := st.text
		switch {
		case e.ID == c.state.recorded:
			style = st.selected
		case e.Cheater:
			style = st.warn
		}
		c.textCentered(centerX, 5+i, style.Render(line))
	}

	hint := st.key.Render("^ v") + st.dim.Render(" scroll   ") + st.key.Render("ESC") + st.dim.Render(" back")
	c.textCentered(centerX, termHeight-1, hint)
}

// drawShutdownScreen draws the server shutdown notice.
func (c *Client) drawShutdownScreen(centerX, centerY int) {
	c.textCentered(centerX, centerY-2, c.styles.bad.Render("SERVER SHUTTING DOWN"))
	msg := fmt.Sprintf("Disconnecting in %d seconds", int(math.Ceil(c.state.shutdownTimer)))
	c.textCentered(centerX, centerY, c.styles.text.Render(msg))
	c.textCentered(centerX, centerY+2, c.styles.dim.Render("Thanks for playing!"))
}

