package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/snappingturtle/synapse/neural"
)

// HUDRows is the height of the status area above the canvas
const HUDRows = 2

var (
	hudStyle = tcell.StyleDefault.Foreground(tcell.NewRGBColor(213, 238, 220)).Background(tcell.NewRGBColor(6, 42, 20))
	keyStyle = hudStyle.Foreground(tcell.NewRGBColor(16, 185, 129)).Bold(true)
)

// DrawText writes s at (x, y) and returns the column after the last cell
func DrawText(screen tcell.Screen, x, y int, style tcell.Style, s string) int {
	for _, r := range s {
		screen.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
	return x
}

// HUDState is the information shown in the status area
type HUDState struct {
	Layout  string
	Nodes   int
	Edges   int
	Signals int
	Stats   neural.Stats
	Visible bool
	Sound   bool
	FPS     float64
}

// DrawHUD renders the two status lines
func DrawHUD(screen tcell.Screen, st HUDState) {
	cols, _ := screen.Size()
	for y := 0; y < HUDRows; y++ {
		for x := 0; x < cols; x++ {
			screen.SetContent(x, y, ' ', nil, hudStyle)
		}
	}

	state := "running"
	if !st.Visible {
		state = "paused"
	}
	sound := "off"
	if st.Sound {
		sound = "on"
	}
	DrawText(screen, 1, 0, hudStyle, fmt.Sprintf(
		"%s  nodes %d  edges %d  signals %-4d  fires %d (auto %d, pointer %d)  dropped %d  %.0f fps  %s  sound %s",
		st.Layout, st.Nodes, st.Edges, st.Signals,
		st.Stats.Fires, st.Stats.AutoFires, st.Stats.PointerFires, st.Stats.Dropped, st.FPS, state, sound))

	x := 1
	for _, kv := range [][2]string{
		{"space", "fire"}, {"b", "burst"}, {"v", "pause"}, {"s", "sound"}, {"h", "hud"}, {"q", "quit"},
	} {
		x = DrawText(screen, x, 1, keyStyle, kv[0])
		x = DrawText(screen, x+1, 1, hudStyle, kv[1]) + 2
	}
}
