package render

// BlendMode defines the compositing operation applied by Canvas writes
type BlendMode uint8

// Blend Operations
const (
	BlendReplace BlendMode = iota // Dst = Src (opaque overwrite)
	BlendAlpha                    // Dst = Src*α + Dst*(1-α)
	BlendAdd                      // Dst = clamp(Dst + Src*α, 255)
	BlendScreen                   // Dst = 1-(1-Dst)(1-Src*α), never blows past white
	BlendMax                      // Dst = max(Dst, Src) per channel, α-mixed
)

// String returns human-readable mode name
func (m BlendMode) String() string {
	switch m {
	case BlendReplace:
		return "Replace"
	case BlendAlpha:
		return "Alpha"
	case BlendAdd:
		return "Add"
	case BlendScreen:
		return "Screen"
	case BlendMax:
		return "Max"
	default:
		return "Unknown"
	}
}

// Apply composites src over dst with the mode's operation
func (m BlendMode) Apply(dst, src RGB, alpha float64) RGB {
	switch m {
	case BlendReplace:
		return src
	case BlendAlpha:
		return Blend(dst, src, alpha)
	case BlendAdd:
		return Add(dst, src, alpha)
	case BlendScreen:
		return Screen(dst, src, alpha)
	case BlendMax:
		return Max(dst, src, alpha)
	default:
		return dst
	}
}
