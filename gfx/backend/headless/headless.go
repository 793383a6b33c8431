// Package headless implements gfx.Context without a GPU. Every call is
// recorded with its arguments and a small amount of binding/capability state
// is tracked, which makes it both the test double for the vertex-resource
// core and the context used by GPU-less tools like the stress harness.
package headless

import (
	"fmt"

	"github.com/plus3/vermeer/gfx"
	"github.com/plus3/vermeer/gfx/backend"
)

func init() {
	backend.Register(backend.BackendHeadless, func() backend.Backend {
		return &Backend{}
	})
}

// Backend is the headless backend. Init always succeeds.
type Backend struct{}

func (b *Backend) Name() string { return backend.BackendHeadless }

func (b *Backend) Init() error { return nil }

func (b *Backend) Close() {}

// NewContext returns a fresh recording context.
func (b *Backend) NewContext() gfx.Context { return NewContext() }

// Call is one recorded context call: the method name plus its arguments
// formatted as ints.
type Call struct {
	Op   string
	Args []int
}

// String renders the call as "Op(a, b, ...)", which keeps test failure
// output readable.
func (c Call) String() string {
	s := c.Op + "("
	for i, a := range c.Args {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprint(a)
	}
	return s + ")"
}

// Context records every gfx.Context call and tracks binding state.
// It is not safe for concurrent use, matching the single-threaded contract
// of the real boundary.
type Context struct {
	calls []Call

	nextArray  uint32
	nextBuffer uint32

	boundArray   uint32
	boundBuffer  uint32
	boundTexture uint32

	capabilities map[gfx.Capability]bool
	polygonMode  gfx.PolygonMode

	// bufferData holds the last upload per buffer handle.
	bufferData map[uint32][]float32

	liveArrays  map[uint32]bool
	liveBuffers map[uint32]bool

	// FailAllocations makes Create calls return 0, simulating native
	// resource exhaustion.
	FailAllocations bool
}

// NewContext creates an empty recording context.
func NewContext() *Context {
	return &Context{
		capabilities: make(map[gfx.Capability]bool),
		bufferData:   make(map[uint32][]float32),
		liveArrays:   make(map[uint32]bool),
		liveBuffers:  make(map[uint32]bool),
	}
}

func (c *Context) record(op string, args ...int) {
	c.calls = append(c.calls, Call{Op: op, Args: args})
}

func (c *Context) CreateVertexArray() uint32 {
	if c.FailAllocations {
		c.record("CreateVertexArray", 0)
		return 0
	}
	c.nextArray++
	c.liveArrays[c.nextArray] = true
	c.record("CreateVertexArray", int(c.nextArray))
	return c.nextArray
}

func (c *Context) CreateBuffer() uint32 {
	if c.FailAllocations {
		c.record("CreateBuffer", 0)
		return 0
	}
	c.nextBuffer++
	c.liveBuffers[c.nextBuffer] = true
	c.record("CreateBuffer", int(c.nextBuffer))
	return c.nextBuffer
}

func (c *Context) BindVertexArray(array uint32) {
	c.boundArray = array
	c.record("BindVertexArray", int(array))
}

func (c *Context) BindArrayBuffer(buffer uint32) {
	c.boundBuffer = buffer
	c.record("BindArrayBuffer", int(buffer))
}

func (c *Context) BufferData(data []float32, usage gfx.Usage) {
	if c.boundBuffer != 0 {
		c.bufferData[c.boundBuffer] = append([]float32(nil), data...)
	}
	c.record("BufferData", len(data), int(usage))
}

func (c *Context) EnableVertexAttrib(index uint32) {
	c.record("EnableVertexAttrib", int(index))
}

func (c *Context) VertexAttribPointer(index uint32, size int32, typ gfx.AttribType, stride int32, offset int) {
	c.record("VertexAttribPointer", int(index), int(size), int(typ), int(stride), offset)
}

func (c *Context) SetCapability(cap gfx.Capability, enabled bool) {
	c.capabilities[cap] = enabled
	flag := 0
	if enabled {
		flag = 1
	}
	c.record("SetCapability", int(cap), flag)
}

func (c *Context) BlendFunc(src, dst gfx.BlendFactor) {
	c.record("BlendFunc", int(src), int(dst))
}

func (c *Context) PolygonMode(mode gfx.PolygonMode) {
	c.polygonMode = mode
	c.record("PolygonMode", int(mode))
}

func (c *Context) DrawArrays(mode gfx.PrimitiveMode, first, count int32) {
	c.record("DrawArrays", int(mode), int(first), int(count))
}

func (c *Context) BindTexture2D(texture uint32) {
	c.boundTexture = texture
	c.record("BindTexture2D", int(texture))
}

func (c *Context) DeleteBuffer(buffer uint32) {
	delete(c.liveBuffers, buffer)
	c.record("DeleteBuffer", int(buffer))
}

func (c *Context) DeleteVertexArray(array uint32) {
	delete(c.liveArrays, array)
	c.record("DeleteVertexArray", int(array))
}

// Calls returns all recorded calls in order.
func (c *Context) Calls() []Call {
	return c.calls
}

// CallsOf returns the recorded calls with the given op name, in order.
func (c *Context) CallsOf(op string) []Call {
	var out []Call
	for _, call := range c.calls {
		if call.Op == op {
			out = append(out, call)
		}
	}
	return out
}

// Reset clears the call log but keeps handle counters and binding state.
func (c *Context) Reset() {
	c.calls = nil
}

// BoundVertexArray returns the currently bound vertex array handle.
func (c *Context) BoundVertexArray() uint32 { return c.boundArray }

// BoundArrayBuffer returns the currently bound array buffer handle.
func (c *Context) BoundArrayBuffer() uint32 { return c.boundBuffer }

// BoundTexture2D returns the currently bound 2D texture handle.
func (c *Context) BoundTexture2D() uint32 { return c.boundTexture }

// CapabilityEnabled reports the last state set for a capability.
func (c *Context) CapabilityEnabled(cap gfx.Capability) bool {
	return c.capabilities[cap]
}

// CurrentPolygonMode reports the last polygon mode set.
func (c *Context) CurrentPolygonMode() gfx.PolygonMode { return c.polygonMode }

// BufferContents returns the last data uploaded to the given buffer handle.
func (c *Context) BufferContents(buffer uint32) []float32 {
	return c.bufferData[buffer]
}

// LiveHandles returns how many vertex arrays and buffers are created but not
// yet deleted. Tests use this to assert leak-free teardown.
func (c *Context) LiveHandles() (arrays, buffers int) {
	return len(c.liveArrays), len(c.liveBuffers)
}
