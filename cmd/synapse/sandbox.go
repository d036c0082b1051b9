package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/snappingturtle/synapse/audio"
	"github.com/snappingturtle/synapse/config"
	"github.com/snappingturtle/synapse/engine"
	"github.com/snappingturtle/synapse/event"
	"github.com/snappingturtle/synapse/neural"
	"github.com/snappingturtle/synapse/render"
	"github.com/snappingturtle/synapse/terminal"
)

type sandboxOptions struct {
	sound  bool
	scale  int
	seed   int64
	layout string
}

func newSandboxCmd(a *app) *cobra.Command {
	o := &sandboxOptions{}
	cmd := &cobra.Command{
		Use:   "sandbox",
		Short: "Run the network live in the terminal",
		Long: `Run the network live in the terminal. Hover a node to fire it, click to
fire the first layer. Keys: space fire, b burst, v pause, s sound, h HUD, q quit.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSandbox(cmd.Context(), a, o)
		},
	}

	f := cmd.Flags()
	f.BoolVar(&o.sound, "sound", false, "chime on every fire")
	f.IntVar(&o.scale, "scale", 0, "canvas pixels per cell column, 0 uses the config")
	f.Int64Var(&o.seed, "seed", 0, "random seed, 0 uses the config or the clock")
	f.StringVar(&o.layout, "layout", "", "layout override: layered or grid")
	return cmd
}

// crash restores the terminal and exits with the panic and its stack
func crash(screen tcell.Screen, r any) {
	screen.Fini()
	terminal.EmergencyReset(os.Stdout)
	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mSYNAPSE CRASHED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
	os.Exit(1)
}

func runSandbox(ctx context.Context, a *app, o *sandboxOptions) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("sandbox needs an interactive terminal")
	}
	if err := a.applyOverrides(o.seed, o.layout); err != nil {
		return err
	}
	scale := a.cfg.Sandbox.Scale
	if o.scale > 0 {
		scale = o.scale
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	defer func() {
		if r := recover(); r != nil {
			crash(screen, r)
		}
	}()

	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.EnableFocus()
	screen.HideCursor()

	player := audio.NewPlayer(a.cfg.AudioPlayerConfig(), a.log)
	defer player.Close()
	player.SetEnabled(a.cfg.Audio.Enabled || o.sound)

	sim := a.newSimulator(neural.WithFireHook(player.OnFire))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	hudRows := 0
	if a.cfg.Sandbox.HUD {
		hudRows = terminal.HUDRows
	}
	queue := event.NewQueue()
	input := terminal.NewInput(scale, hudRows)
	presenter := terminal.NewPresenter(screen, hudRows)
	updates := make(chan func(), 4)

	hud := &hudTracker{sim: sim, player: player, layout: sim.Layout().Name()}
	showHUD := hudRows > 0

	// Seed the first topology before any terminal event arrives
	cols, rows := screen.Size()
	w, h := terminal.CanvasSize(cols, rows-hudRows, scale)
	queue.Push(neural.ResizeEvent(float64(w), float64(h)))

	go func() {
		defer func() {
			if r := recover(); r != nil {
				crash(screen, r)
			}
		}()
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return // Screen finalized
			}
			evs, act := input.Translate(ev)
			for _, e := range evs {
				queue.Push(e)
			}

			switch act {
			case terminal.ActionQuit:
				cancel()
				return
			case terminal.ActionToggleSound:
				player.SetEnabled(!player.Enabled())
				a.log.Debug("sound toggled", "enabled", player.Enabled())
			case terminal.ActionToggleHUD:
				rows := terminal.HUDRows
				if hudRows > 0 {
					rows = 0
				}
				hudRows = rows
				input.SetHUDRows(rows)
				push(ctx, updates, func() {
					presenter.SetHUDRows(rows)
					showHUD = rows > 0
				})
				cols, r := screen.Size()
				w, h := terminal.CanvasSize(cols, r-rows, scale)
				queue.Push(neural.ResizeEvent(float64(w), float64(h)))
			}
		}
	}()

	if a.configPath != "" {
		go func() {
			err := config.Watch(ctx, a.configPath, func(cfg *config.Config, err error) {
				if err != nil {
					a.log.Warn("config reload rejected", "path", a.configPath, "error", err)
					return
				}
				a.log.Info("config reloaded", "path", a.configPath, "layout", cfg.Layout.Name)
				push(ctx, updates, func() {
					sim.Configure(cfg.Params(), cfg.NeuralLayout())
					hud.layout = sim.Layout().Name()
				})
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				a.log.Warn("config watch stopped", "error", err)
			}
		}()
	}

	driver := &engine.Driver{
		Sim:      sim,
		Queue:    queue,
		Canvas:   render.NewCanvas(0, 0),
		Interval: time.Second / time.Duration(a.cfg.Sandbox.FPS),
		Log:      a.log,
		Updates:  updates,
		OnFrame:  hud.observe,
		Presenter: engine.PresenterFunc(func(img *image.RGBA) error {
			if showHUD {
				terminal.DrawHUD(screen, hud.state())
			}
			return presenter.Present(img)
		}),
	}

	a.log.Info("sandbox started", "scale", scale, "fps", a.cfg.Sandbox.FPS, "seed", a.cfg.Simulation.Seed)
	err = driver.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// push hands fn to the frame goroutine unless the sandbox is shutting down
func push(ctx context.Context, updates chan<- func(), fn func()) {
	select {
	case updates <- fn:
	case <-ctx.Done():
	}
}

// hudTracker accumulates frame timing for the status line
// All methods run on the frame goroutine.
type hudTracker struct {
	sim    *neural.Simulator
	player *audio.Player
	layout string
	fps    float64
}

func (t *hudTracker) observe(info engine.FrameInfo) {
	if !info.Visible || info.DT <= 0 {
		return
	}
	inst := 1 / info.DT.Seconds()
	if t.fps == 0 {
		t.fps = inst
		return
	}
	t.fps += (inst - t.fps) * 0.1
}

func (t *hudTracker) state() terminal.HUDState {
	return terminal.HUDState{
		Layout:  t.layout,
		Nodes:   len(t.sim.Nodes()),
		Edges:   len(t.sim.Edges()),
		Signals: t.sim.SignalCount(),
		Stats:   t.sim.Stats(),
		Visible: t.sim.Visible(),
		Sound:   t.player.Enabled(),
		FPS:     t.fps,
	}
}
