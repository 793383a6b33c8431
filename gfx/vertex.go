package gfx

// FloatSize is the size in bytes of one vertex component.
const FloatSize = 4

// Attribute describes one interleaved vertex attribute: its element type and
// how many components it spans.
type Attribute struct {
	Type AttribType
	Size int32
}

// Stock layouts for the geometry this engine draws.
var (
	// LayoutPosNormUV is position (3) + normal (3) + texture coords (2).
	LayoutPosNormUV = []Attribute{
		{Type: Float, Size: 3},
		{Type: Float, Size: 3},
		{Type: Float, Size: 2},
	}

	// LayoutPosColor is position (3) + RGBA color (4).
	LayoutPosColor = []Attribute{
		{Type: Float, Size: 3},
		{Type: Float, Size: 4},
	}

	// LayoutPosUV is position (3) + texture coords (2).
	LayoutPosUV = []Attribute{
		{Type: Float, Size: 3},
		{Type: Float, Size: 2},
	}
)

// StrideComponents returns the number of float components of one interleaved
// vertex under the given layout.
func StrideComponents(layout []Attribute) int32 {
	var stride int32
	for _, attr := range layout {
		stride += attr.Size
	}
	return stride
}

// StrideBytes returns the byte stride of one interleaved vertex.
func StrideBytes(layout []Attribute) int32 {
	return StrideComponents(layout) * FloatSize
}
