package gfx_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/plus3/vermeer/gfx"
	"github.com/plus3/vermeer/gfx/backend/headless"
)

func TestMeshBuilderPushVertex(t *testing.T) {
	builder := gfx.NewMeshBuilder(gfx.LayoutPosColor)

	builder.
		PushVertex(0, 0, 0, 1, 0, 0, 1).
		PushVertex(1, 0, 0, 0, 1, 0, 1).
		PushVertex(0, 1, 0, 0, 0, 1, 1)

	assert.Equal(t, int32(3), builder.VertexCount())
}

func TestMeshBuilderPushVertexWrongArity(t *testing.T) {
	builder := gfx.NewMeshBuilder(gfx.LayoutPosUV)

	assert.Panics(t, func() {
		builder.PushVertex(1, 2, 3)
	})
}

func TestMeshBuilderPushAll(t *testing.T) {
	builder := gfx.NewMeshBuilder(gfx.LayoutPosUV)

	builder.PushAll(gfx.QuadPosUV(2, 2))
	assert.Equal(t, int32(6), builder.VertexCount())

	assert.Panics(t, func() {
		builder.PushAll([]float32{1, 2, 3})
	})
}

func TestMeshBuilderBuild(t *testing.T) {
	gl := headless.NewContext()

	vao := gfx.NewMeshBuilder(gfx.LayoutPosUV).
		PushAll(gfx.QuadPosUV(1, 1)).
		Build(gl, gfx.StaticDraw, gfx.NewConfigBuilder().Build())

	assert.Equal(t, int32(6), vao.VertexCount())
	assert.Equal(t, gfx.QuadPosUV(1, 1), gl.BufferContents(1))
}

func TestMeshBuilderEmptyLayoutPanics(t *testing.T) {
	assert.Panics(t, func() {
		gfx.NewMeshBuilder(nil)
	})
}

func TestQuadPosUV(t *testing.T) {
	quad := gfx.QuadPosUV(4, 2)

	// 6 vertices of 5 components each.
	assert.Len(t, quad, 30)

	// Centered on the origin: x spans [-2, 2], y spans [-1, 1].
	for i := 0; i < len(quad); i += 5 {
		x, y := quad[i], quad[i+1]
		assert.True(t, x == -2 || x == 2)
		assert.True(t, y == -1 || y == 1)
		assert.Equal(t, float32(0), quad[i+2])
	}
}
