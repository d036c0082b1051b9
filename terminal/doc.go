// @focus: #sys { term }
// Package terminal hosts a raster canvas in a tcell screen.
//
// The canvas is shown with upper-half block cells, two pixels per cell, below
// an optional HUD. Input translates tcell events into simulator events.
// EmergencyReset restores the terminal from panic recovery.
package terminal
