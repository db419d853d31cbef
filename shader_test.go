package wirescape

import (
	"testing"
)

func TestShaderPassUniforms(t *testing.T) {
	p := NewShaderPass(1.5, 0.2)
	p.SetTime(2.25)
	u := p.Uniforms()
	if u["Time"] != float32(2.25) || u["Thickness"] != float32(1.5) || u["StrengthNoise"] != float32(0.2) {
		t.Errorf("uniforms = %v", u)
	}

	// Slider edits land on the next Apply.
	p.Thickness = 3
	if got := p.Uniforms()["Thickness"]; got != float32(3) {
		t.Errorf("Thickness uniform = %v, want 3", got)
	}
}
