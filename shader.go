package wirescape

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// waveShaderSrc displaces the rendered scene with a slow wave and adds
// animated grain. Kage requires exported uniform names: Time, Thickness and
// StrengthNoise carry uTime, uThickness and uStrengthNoise.
const waveShaderSrc = `//kage:unit pixels
package main

var Time float
var Thickness float
var StrengthNoise float

func hash(p vec2) float {
	return fract(sin(dot(p, vec2(12.9898, 78.233))) * 43758.5453)
}

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	offset := vec2(sin(src.y*0.05+Time*2.0), cos(src.x*0.05+Time*1.5)) * Thickness
	c := imageSrc0At(src + offset)
	n := (hash(floor(src)+vec2(Time)) - 0.5) * StrengthNoise
	// Premultiplied: keep rgb within [0, alpha].
	return vec4(clamp(c.rgb+vec3(n*c.a), vec3(0), vec3(c.a)), c.a)
}
`

// --- Lazy shader compilation (no sync.Once; the frame loop is single-threaded) ---

var waveShader *ebiten.Shader

func ensureWaveShader() *ebiten.Shader {
	if waveShader == nil {
		s, err := ebiten.NewShader([]byte(waveShaderSrc))
		if err != nil {
			panic("wirescape: failed to compile wave shader: " + err.Error())
		}
		waveShader = s
	}
	return waveShader
}

// ShaderPass post-processes the rendered scene. Its fields are the shader's
// named uniforms and are read on every Apply.
type ShaderPass struct {
	Time          float32
	Thickness     float32
	StrengthNoise float32

	uniforms map[string]any
	shaderOp ebiten.DrawRectShaderOptions
}

// NewShaderPass creates a pass with the given initial uniforms.
func NewShaderPass(thickness, strengthNoise float32) *ShaderPass {
	return &ShaderPass{
		Thickness:     thickness,
		StrengthNoise: strengthNoise,
		uniforms:      make(map[string]any, 3),
	}
}

// SetTime updates the time uniform, in seconds.
func (p *ShaderPass) SetTime(t float64) {
	p.Time = float32(t)
}

// Uniforms returns the uniform map passed to the shader, refreshed from the
// pass fields.
func (p *ShaderPass) Uniforms() map[string]any {
	p.uniforms["Time"] = p.Time
	p.uniforms["Thickness"] = p.Thickness
	p.uniforms["StrengthNoise"] = p.StrengthNoise
	return p.uniforms
}

// Apply renders src into dst through the shader.
func (p *ShaderPass) Apply(src, dst *ebiten.Image) {
	shader := ensureWaveShader()
	bounds := src.Bounds()
	p.shaderOp.Images[0] = src
	p.shaderOp.Uniforms = p.Uniforms()
	dst.DrawRectShader(bounds.Dx(), bounds.Dy(), shader, &p.shaderOp)
}
