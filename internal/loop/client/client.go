package client

import (
	"bufio"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/planetwars/internal/config"
	"github.com/tomz197/planetwars/internal/draw"
	"github.com/tomz197/planetwars/internal/input"
	loopconfig "github.com/tomz197/planetwars/internal/loop/config"
	"github.com/tomz197/planetwars/internal/loop/server"
	"github.com/tomz197/planetwars/internal/sound"
)

// Client handles rendering and input for a single connection.
type Client struct {
	server       server.GameServer
	handle       *server.ClientHandle
	state        *ClientState
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	reader       *bufio.Reader
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	username     string
	termSizeFunc draw.TermSizeFunc
	log          *log.Logger
	sound        *sound.Player
	styles       styles
	seed         int64
	saveSettings func(config.Settings) error
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	Settings     config.Settings
	Logger       *log.Logger
	// Seed fixes the map of every match when non-zero.
	Seed int64
	// SaveSettings persists the options chosen on the setup screen. Optional.
	SaveSettings func(config.Settings) error
}

// NewClient creates a new client connected to the given server.
func NewClient(gs server.GameServer, r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	settings := opts.Settings
	if settings.PlayerName == "" {
		settings.PlayerName = config.SanitizeName(opts.Username)
	}
	if settings.PlayerName == "" {
		settings.PlayerName = config.DefaultSettings().PlayerName
	}
	if settings.SoundPack == "" {
		settings.SoundPack = sound.DefaultPack
	}

	handle := gs.RegisterClient(opts.Username)
	state := NewClientState(settings)
	state.termSizeFunc = termSizeFunc

	// Create canvas with clamped dimensions for max render resolution
	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, loopconfig.ViewWidth, loopconfig.ViewHeight)
	canvas.SetOffset(offsetCol, offsetRow)
	chunkWriter := draw.NewChunkWriter(w, offsetCol, offsetRow)

	logger = logger.With("session", handle.ID, "user", opts.Username)

	return &Client{
		server:       gs,
		handle:       handle,
		state:        state,
		canvas:       canvas,
		chunkWriter:  chunkWriter,
		reader:       r,
		writer:       w,
		lastInput:    time.Now(),
		inputStream:  input.StartStream(r),
		username:     opts.Username,
		termSizeFunc: termSizeFunc,
		log:          logger,
		sound:        sound.New(settings.SoundPack, chunkWriter, logger),
		styles:       newStyles(w),
		seed:         opts.Seed,
		saveSettings: opts.SaveSettings,
	}
}

// Settings returns the options currently chosen on the setup screen.
func (c *Client) Settings() config.Settings {
	return c.state.Settings
}

// Run starts the client loop. Blocks until the client disconnects or server stops.
func (c *Client) Run() error {
	draw.EnterGameScreen(c.writer)
	defer draw.LeaveGameScreen(c.writer)

	lastTime := time.Now()

	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		// Process input
		c.processInput()

		// Check for server events
		c.processServerEvents()

		// Handle screen resize
		c.updateScreen()

		// Handle game state
		switch c.state.GameState {
		case GameStateStart:
			c.updateStartState()
		case GameStateSetup:
			c.updateSetupState()
		case GameStatePlaying:
			c.updatePlayingState()
		case GameStateGameOver:
			c.updateGameOverState()
		case GameStateScoreboard:
			c.updateScoreboardState()
		case GameStateShutdown:
			c.updateShutdownState()
		}
		c.state.updateEffects()

		// Draw frame
		if err := c.drawFrame(); err != nil {
			return err
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < loopconfig.ClientTargetFrameTime {
			time.Sleep(loopconfig.ClientTargetFrameTime - elapsed)
		}
	}

	c.state.clearEffects()

	// Unregister from server
	c.server.UnregisterClient(c.handle.ID)
	return nil
}

// processInput reads this frame's key presses and tracks inactivity.
func (c *Client) processInput() {
	c.state.Input = input.ReadInput(c.inputStream)

	if len(c.state.Input.Pressed) > 0 {
		c.lastInput = time.Now()
		if c.state.isInactive {
			// The key that wakes the session does nothing else.
			c.state.isInactive = false
			c.state.Input = input.Input{}
			return
		}
	} else if time.Since(c.lastInput).Seconds() > loopconfig.InactivityDisconnectUser {
		c.log.Info("disconnecting inactive session")
		c.state.Running = false
	} else if time.Since(c.lastInput).Seconds() > loopconfig.InactivityWarnUser {
		c.state.isInactive = true
	}

	if c.state.Input.Closed || c.state.Input.Has(input.KeyInterrupt) {
		c.state.Running = false
		return
	}

	// Q quits everywhere except while typing a name.
	editing := c.state.GameState == GameStateSetup && c.state.setupRow == rowName
	if !editing && c.state.Input.Typed('q') {
		c.state.Running = false
	}
}

// processServerEvents handles events from the server.
func (c *Client) processServerEvents() {
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				// Server closed the channel
				c.state.Running = false
				return
			}
			switch event.Type {
			case server.EventServerShutdown:
				c.abandonMatch()
				c.state.GameState = GameStateShutdown
				c.state.shutdownTimer = loopconfig.ShutdownDisplaySeconds
			case server.EventScoreRecorded:
				c.state.record = recordSaved
				c.state.recorded = event.Entry.ID
			case server.EventScoreFailed:
				c.state.record = recordFailed
			}
		default:
			c.state.lobby = c.server.GetSnapshot()
			return
		}
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area (e.g. old borders or offset content).
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		draw.ClearScreen(c.writer)
		c.canvas.ForceRedraw()
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = termWidth
	renderHeight = termHeight
	if renderWidth > loopconfig.MaxTermWidth {
		renderWidth = loopconfig.MaxTermWidth
	}
	if renderHeight > loopconfig.MaxTermHeight {
		renderHeight = loopconfig.MaxTermHeight
	}
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

// changeState switches screens, dropping keys typed during the switch.
func (c *Client) changeState(s GameState) {
	input.ResetKeyInput(c.inputStream)
	c.state.GameState = s
	c.state.scrollTop = 0
}

// updateShutdownState handles the shutdown screen countdown.
func (c *Client) updateShutdownState() {
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}
