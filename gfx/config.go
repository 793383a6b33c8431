package gfx

// Config holds the per-draw render state of a Vao. A Config is typically
// shared by reference between many Vaos; flipping a flag changes the state
// issued on every subsequent draw without touching vertex data.
type Config struct {
	DepthTest bool
	Blend     bool
	Wireframe bool
	Culling   bool
}

// ConfigBuilder builds a Config fluently.
type ConfigBuilder struct {
	config Config
}

// NewConfigBuilder returns a builder seeded with the engine defaults:
// depth test on, everything else off.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		config: Config{
			DepthTest: true,
		},
	}
}

// DepthTest toggles depth testing.
func (b *ConfigBuilder) DepthTest(enabled bool) *ConfigBuilder {
	b.config.DepthTest = enabled
	return b
}

// Blend toggles alpha blending (src-alpha / one-minus-src-alpha).
func (b *ConfigBuilder) Blend(enabled bool) *ConfigBuilder {
	b.config.Blend = enabled
	return b
}

// Wireframe toggles outlined polygon rasterization.
func (b *ConfigBuilder) Wireframe(enabled bool) *ConfigBuilder {
	b.config.Wireframe = enabled
	return b
}

// Culling toggles back-face culling.
func (b *ConfigBuilder) Culling(enabled bool) *ConfigBuilder {
	b.config.Culling = enabled
	return b
}

// Build returns the finished Config.
func (b *ConfigBuilder) Build() *Config {
	config := b.config
	return &config
}
