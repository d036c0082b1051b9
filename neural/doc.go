// Package neural simulates signal propagation through a small randomized
// network and paints it onto a raster surface. It drives the animated hero
// background.
//
// The simulation has three phases:
//
//   - Topology build (Resize): a Layout places nodes and connects them. The
//     previous graph, signals and ripples are discarded wholesale.
//   - Update (Step): pending external events are applied, pointer hover and the
//     automatic timer may fire new waves, nodes drift and decay, signals travel
//     along edges and rebroadcast on arrival until the generation ceiling.
//   - Render (Render): edges, highlights, ripples, signals and nodes are
//     composited onto a Surface.
//
// A Simulator is owned by a single frame loop and is not safe for concurrent
// use. Inputs arriving on other goroutines go through Post on the frame
// goroutine, typically after draining an event.Queue. Nothing in this package
// returns an error: inconsistent state (stale edge references, a missing
// surface, a zero-sized viewport) degrades to doing nothing for that frame.
package neural
