package scene

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Sun-lit shading: a point light at the origin plus ambient, so the night side of each planet
// stays faintly visible. The sun itself is drawn with the default unlit material.
const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 fragPosition;
out vec2 fragTexCoord;
out vec3 fragNormal;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragTexCoord = vertexTexCoord;
  fragNormal = mat3(matModel) * vertexNormal;
  gl_Position = matProjection * matView * worldPos;
}
`
	litFS = `#version 330
in vec3 fragPosition;
in vec2 fragTexCoord;
in vec3 fragNormal;
uniform sampler2D texture0;
uniform vec4 colDiffuse;
uniform vec3 lightPos;
uniform vec4 ambient;
uniform vec3 lightColor;
out vec4 finalColor;
void main() {
  vec4 tint = texture(texture0, fragTexCoord) * colDiffuse;
  vec3 N = normalize(fragNormal);
  vec3 L = normalize(lightPos - fragPosition);
  float NdotL = max(dot(N, L), 0.0);
  vec3 diffuse = tint.rgb * NdotL * lightColor;
  vec3 amb = ambient.rgb * tint.rgb;
  finalColor = vec4(amb + diffuse, tint.a);
}
`
)

// defaultAmbient is the ambient term (dim so the far side isn't pure black).
var defaultAmbient = [4]float32{0.15, 0.15, 0.18, 1.0}

// defaultLightColor is a warm white, roughly the sun texture's average.
var defaultLightColor = [3]float32{1.0, 0.97, 0.9}

// lighting owns the lit shader and its uniform locations.
type lighting struct {
	shader   rl.Shader
	posLoc   int32
	ambLoc   int32
	colorLoc int32
}

// loadLighting compiles the shader. ok is false when the GPU rejects it; callers then keep the
// default unlit material.
func loadLighting() (l lighting, ok bool) {
	l.shader = rl.LoadShaderFromMemory(litVS, litFS)
	if !rl.IsShaderValid(l.shader) {
		return l, false
	}
	l.posLoc = rl.GetShaderLocation(l.shader, "lightPos")
	l.ambLoc = rl.GetShaderLocation(l.shader, "ambient")
	l.colorLoc = rl.GetShaderLocation(l.shader, "lightColor")
	l.setUniforms()
	return l, true
}

// setUniforms sets the constant light uniforms (cgo-safe: local arrays).
func (l lighting) setUniforms() {
	pos := [3]float32{0, 0, 0}
	amb := [4]float32{defaultAmbient[0], defaultAmbient[1], defaultAmbient[2], defaultAmbient[3]}
	col := [3]float32{defaultLightColor[0], defaultLightColor[1], defaultLightColor[2]}
	if l.posLoc >= 0 {
		rl.SetShaderValueV(l.shader, l.posLoc, pos[:], rl.ShaderUniformVec3, 1)
	}
	if l.ambLoc >= 0 {
		rl.SetShaderValueV(l.shader, l.ambLoc, amb[:], rl.ShaderUniformVec4, 1)
	}
	if l.colorLoc >= 0 {
		rl.SetShaderValueV(l.shader, l.colorLoc, col[:], rl.ShaderUniformVec3, 1)
	}
}

func (l lighting) unload() {
	if rl.IsShaderValid(l.shader) {
		rl.UnloadShader(l.shader)
	}
}
