package scene

import "github.com/go-gl/mathgl/mgl32"

// TransformComponent places an entity in world space.
type TransformComponent struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

// NewTransform returns an identity transform at the origin.
func NewTransform() TransformComponent {
	return TransformComponent{
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// NewTransformAt returns an identity transform at the given position.
func NewTransformAt(position mgl32.Vec3) TransformComponent {
	t := NewTransform()
	t.Position = position
	return t
}

// Matrix returns the model matrix: translate * rotate * scale.
func (t *TransformComponent) Matrix() mgl32.Mat4 {
	translate := mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	rotate := t.Rotation.Mat4()
	scale := mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())
	return translate.Mul4(rotate).Mul4(scale)
}
