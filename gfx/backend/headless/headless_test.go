package headless_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/plus3/vermeer/gfx"
	"github.com/plus3/vermeer/gfx/backend/headless"
)

func TestContextRecordsCalls(t *testing.T) {
	ctx := headless.NewContext()

	vao := ctx.CreateVertexArray()
	vbo := ctx.CreateBuffer()
	ctx.BindVertexArray(vao)
	ctx.BindArrayBuffer(vbo)
	ctx.BufferData([]float32{1, 2, 3}, gfx.StaticDraw)

	assert.Equal(t, uint32(1), vao)
	assert.Equal(t, uint32(1), vbo)
	assert.Len(t, ctx.Calls(), 5)
	assert.Equal(t, "BufferData(3, 0)", ctx.Calls()[4].String())
	assert.Equal(t, []float32{1, 2, 3}, ctx.BufferContents(vbo))
}

func TestContextTracksBindings(t *testing.T) {
	ctx := headless.NewContext()

	ctx.BindVertexArray(4)
	ctx.BindArrayBuffer(7)
	ctx.BindTexture2D(9)

	assert.Equal(t, uint32(4), ctx.BoundVertexArray())
	assert.Equal(t, uint32(7), ctx.BoundArrayBuffer())
	assert.Equal(t, uint32(9), ctx.BoundTexture2D())
}

func TestContextHandleCountersSurviveReset(t *testing.T) {
	ctx := headless.NewContext()

	first := ctx.CreateBuffer()
	ctx.Reset()

	assert.Empty(t, ctx.Calls())

	// Reset clears the log, not the handle space.
	second := ctx.CreateBuffer()
	assert.NotEqual(t, first, second)
}

func TestContextFailAllocations(t *testing.T) {
	ctx := headless.NewContext()
	ctx.FailAllocations = true

	assert.Equal(t, uint32(0), ctx.CreateVertexArray())
	assert.Equal(t, uint32(0), ctx.CreateBuffer())
}

func TestContextLiveHandles(t *testing.T) {
	ctx := headless.NewContext()

	a := ctx.CreateVertexArray()
	b := ctx.CreateBuffer()
	ctx.CreateBuffer()

	arrays, buffers := ctx.LiveHandles()
	assert.Equal(t, 1, arrays)
	assert.Equal(t, 2, buffers)

	ctx.DeleteVertexArray(a)
	ctx.DeleteBuffer(b)

	arrays, buffers = ctx.LiveHandles()
	assert.Equal(t, 0, arrays)
	assert.Equal(t, 1, buffers)
}
