package neural

// EventKind identifies an external input
type EventKind uint8

const (
	EventNone EventKind = iota
	EventResize
	EventPointerMove
	EventPointerLeave
	EventVisibility
	EventBurst
	EventFire // Manual fire thought, used by hosts with a keyboard
)

var eventKindNames = [...]string{
	EventNone:         "none",
	EventResize:       "resize",
	EventPointerMove:  "pointer_move",
	EventPointerLeave: "pointer_leave",
	EventVisibility:   "visibility",
	EventBurst:        "burst",
	EventFire:         "fire",
}

// String returns the snake_case name
func (k EventKind) String() string {
	if int(k) < len(eventKindNames) {
		return eventKindNames[k]
	}
	return "unknown"
}

// NoPointer is the sentinel coordinate for an absent pointer
const NoPointer = -1.0

// Event is a pending external input applied at the start of the next Step
type Event struct {
	Kind          EventKind
	X, Y          float64 // Pointer position in canvas pixels
	Width, Height float64 // Viewport size for EventResize
	Visible       bool    // For EventVisibility
}

// ResizeEvent requests a topology rebuild for a new viewport
func ResizeEvent(width, height float64) Event {
	return Event{Kind: EventResize, Width: width, Height: height}
}

// PointerMoveEvent sets the pointer position, (-1,-1) clears it
func PointerMoveEvent(x, y float64) Event {
	return Event{Kind: EventPointerMove, X: x, Y: y}
}

// PointerLeaveEvent clears the pointer
func PointerLeaveEvent() Event {
	return Event{Kind: EventPointerLeave, X: NoPointer, Y: NoPointer}
}

// VisibilityEvent reports whether the canvas is in the viewport
func VisibilityEvent(visible bool) Event {
	return Event{Kind: EventVisibility, Visible: visible}
}

// BurstEvent fires every node of the leftmost layer
func BurstEvent() Event {
	return Event{Kind: EventBurst}
}

// FireThoughtEvent asks for one fire thought
func FireThoughtEvent() Event {
	return Event{Kind: EventFire}
}
