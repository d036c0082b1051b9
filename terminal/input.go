package terminal

import (
	"github.com/gdamore/tcell/v2"

	"github.com/snappingturtle/synapse/neural"
)

// Action is a host-level request that does not go to the simulator
type Action uint8

const (
	ActionNone Action = iota
	ActionQuit
	ActionToggleSound
	ActionToggleHUD
)

// Input translates tcell events into simulator events
type Input struct {
	scale   int
	hudRows int
	visible bool
	pressed bool // Button1 held, bursts fire on the press edge only
}

// NewInput creates a translator for a canvas supersampled by scale
func NewInput(scale, hudRows int) *Input {
	return &Input{scale: max(scale, 1), hudRows: max(hudRows, 0), visible: true}
}

// SetHUDRows updates the reserved rows after a HUD toggle
func (in *Input) SetHUDRows(rows int) {
	in.hudRows = max(rows, 0)
}

// Translate maps one terminal event to zero or more simulator events
func (in *Input) Translate(ev tcell.Event) ([]neural.Event, Action) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		cols, rows := ev.Size()
		w, h := CanvasSize(cols, rows-in.hudRows, in.scale)
		return []neural.Event{neural.ResizeEvent(float64(w), float64(h))}, ActionNone

	case *tcell.EventMouse:
		x, y := ev.Position()
		if y < in.hudRows {
			return []neural.Event{neural.PointerLeaveEvent()}, ActionNone
		}
		out := []neural.Event{neural.PointerMoveEvent(in.cellToCanvas(x, y))}
		down := ev.Buttons()&tcell.Button1 != 0
		if down && !in.pressed {
			out = append(out, neural.BurstEvent())
		}
		in.pressed = down
		return out, ActionNone

	case *tcell.EventFocus:
		in.visible = ev.Focused
		if !ev.Focused {
			return []neural.Event{neural.PointerLeaveEvent(), neural.VisibilityEvent(false)}, ActionNone
		}
		return []neural.Event{neural.VisibilityEvent(true)}, ActionNone

	case *tcell.EventKey:
		return in.key(ev)
	}
	return nil, ActionNone
}

func (in *Input) key(ev *tcell.EventKey) ([]neural.Event, Action) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return nil, ActionQuit
	case tcell.KeyRune:
	default:
		return nil, ActionNone
	}

	switch ev.Rune() {
	case 'q':
		return nil, ActionQuit
	case ' ':
		return []neural.Event{neural.FireThoughtEvent()}, ActionNone
	case 'b':
		return []neural.Event{neural.BurstEvent()}, ActionNone
	case 'v':
		in.visible = !in.visible
		return []neural.Event{neural.VisibilityEvent(in.visible)}, ActionNone
	case 's':
		return nil, ActionToggleSound
	case 'h':
		return nil, ActionToggleHUD
	}
	return nil, ActionNone
}

// cellToCanvas returns the canvas pixel at the center of a cell
func (in *Input) cellToCanvas(x, y int) (float64, float64) {
	s := float64(in.scale)
	return (float64(x) + 0.5) * s, (float64(y-in.hudRows) + 0.5) * 2 * s
}
