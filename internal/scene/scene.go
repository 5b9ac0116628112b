package scene

import (
	"image"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"solar-system/internal/assets"
	"solar-system/internal/bodies"
	"solar-system/internal/geometry"
	"solar-system/internal/kinematics"
	"solar-system/internal/label"
	"solar-system/internal/logger"
)

const (
	sphereRings  = 32
	sphereSlices = 32
	ringAlpha    = 230
	// ringKey is the texture key of the ring; bodies use their names.
	ringKey = "ring:"
)

var (
	orbitColor = rl.NewColor(0x44, 0x44, 0x44, 128)
	starColor  = rl.White
)

// Options are the drawing toggles from the viewer prefs.
type Options struct {
	ShowOrbits bool
	ShowLabels bool
	Lighting   bool
	StarSeed   uint64
}

// node is one body in the scene: its sphere, material and label. Labels are children: they
// are placed relative to the body every frame and live as long as it does.
type node struct {
	body     *kinematics.Body
	mesh     rl.Mesh
	mtl      rl.Material
	// base is the default shader the material was created with; mtl.Shader may be the shared
	// lit shader, which the scene unloads once.
	base     rl.Shader
	tex      rl.Texture2D
	label    *label.Label
	labelTex rl.Texture2D
}

type ring struct {
	parent *node
	spec   bodies.RingSpec
	verts  []geometry.Vertex
	tex    rl.Texture2D
}

// Scene holds everything drawn in 3D. Membership is fixed by Build; Draw only reads body state.
// GPU resources are created on the first Draw, after the window/OpenGL context exists, and
// textures are swapped in as the loader finishes them.
type Scene struct {
	Camera rl.Camera3D
	opts   Options
	log    *logger.Logger

	nodes  []*node
	byName map[string]*node
	ring   *ring
	stars  []rl.Vector3
	orbits [][]rl.Vector3

	gpuReady bool
	lit      lighting
	litOK    bool
	// textures that finished before the GPU was ready
	early []assets.Result
}

// Build constructs the scene for sys once: a node per body with its label, the starfield, an orbit
// loop per planet and the ring. Textures are requested from loader and do not block.
func Build(sys *kinematics.System, reg *bodies.Registry, loader *assets.Loader, labels *label.Generator, opts Options, log *logger.Logger) *Scene {
	s := &Scene{
		opts:   opts,
		log:    log,
		byName: make(map[string]*node, len(sys.Bodies)),
	}
	s.Camera.Position = rl.NewVector3(0, 15, 50)
	s.Camera.Target = rl.NewVector3(0, 0, 0)
	s.Camera.Up = rl.NewVector3(0, 1, 0)
	s.Camera.Fovy = 75
	s.Camera.Projection = rl.CameraPerspective

	for _, b := range sys.Bodies {
		s.buildBody(b, labels)
		loader.Request(b.Desc.Name, b.Desc.Texture, rgba(b.Desc.Color))
		if b.Desc.Kind == bodies.Planet {
			s.orbits = append(s.orbits, toVectors(geometry.OrbitPath(b.Desc.OrbitDistance, geometry.OrbitSegments)))
		}
	}

	spec := reg.Ring()
	if parent, ok := s.byName[spec.Parent]; ok {
		s.ring = &ring{parent: parent, spec: spec, verts: geometry.Ring(spec.Inner, spec.Outer, spec.Segments)}
		loader.Request(ringKey+spec.Parent, spec.Texture, color.RGBA{200, 180, 140, 160})
	}

	s.stars = toVectors(geometry.Starfield(geometry.StarCount, geometry.StarfieldSide, geometry.NewRand(opts.StarSeed)))
	log.Infof("scene built: %d bodies, %d orbits, %d stars", len(s.nodes), len(s.orbits), len(s.stars))
	return s
}

// buildBody adds a node for b with its label child. The body starts where the system put it,
// (d, 0, 0) for planets at t=0.
func (s *Scene) buildBody(b *kinematics.Body, labels *label.Generator) {
	n := &node{body: b}
	if labels != nil && b.Desc.LabelSize > 0 {
		n.label = labels.Make(b.Desc.Name, b.Desc.LabelSize)
	}
	s.nodes = append(s.nodes, n)
	s.byName[b.Desc.Name] = n
}

// Len returns the number of body nodes.
func (s *Scene) Len() int {
	return len(s.nodes)
}

// ensureGPU runs on the first Draw: meshes, default materials in each body's color, label
// textures, the lit shader, and any textures that arrived early.
func (s *Scene) ensureGPU() {
	if s.gpuReady {
		return
	}
	s.gpuReady = true
	if s.opts.Lighting {
		s.lit, s.litOK = loadLighting()
		if !s.litOK {
			s.log.Warnf("lit shader failed to compile; planets drawn unlit")
		}
	}
	for _, n := range s.nodes {
		d := n.body.Desc
		n.mesh = rl.GenMeshSphere(d.Radius, sphereRings, sphereSlices)
		n.mtl = rl.LoadMaterialDefault()
		n.base = n.mtl.Shader
		if albedo := n.mtl.GetMap(rl.MapAlbedo); albedo != nil {
			albedo.Color = rgba(d.Color)
		}
		if s.litOK && d.Kind != bodies.Star {
			n.mtl.Shader = s.lit.shader
		}
		if n.label != nil {
			n.labelTex = upload(n.label.Image)
		}
	}
	s.ApplyTextures(s.early)
	s.early = nil
}

// ApplyTextures swaps finished loads into their materials. Must run on the GL thread.
func (s *Scene) ApplyTextures(results []assets.Result) {
	if len(results) == 0 {
		return
	}
	if !s.gpuReady {
		s.early = append(s.early, results...)
		return
	}
	for _, r := range results {
		tex := upload(r.Image)
		if !rl.IsTextureValid(tex) {
			s.log.Warnf("texture %s: GPU upload failed", r.Key)
			continue
		}
		if s.ring != nil && r.Key == ringKey+s.ring.spec.Parent {
			s.ring.tex = tex
			continue
		}
		n, ok := s.byName[r.Key]
		if !ok {
			rl.UnloadTexture(tex)
			continue
		}
		n.tex = tex
		rl.SetMaterialTexture(&n.mtl, rl.MapAlbedo, tex)
		// Placeholders are already in the body's color.
		if albedo := n.mtl.GetMap(rl.MapAlbedo); albedo != nil {
			albedo.Color = rl.White
		}
	}
}

// Draw renders the 3D scene with the given projection. Call inside a drawing/texture mode.
// Order: starfield, orbit loops, bodies, ring, labels (transparent things last).
func (s *Scene) Draw(projection rl.Matrix) {
	s.ensureGPU()
	rl.BeginMode3D(s.Camera)
	rl.SetMatrixProjection(projection)

	for _, p := range s.stars {
		rl.DrawPoint3D(p, starColor)
	}
	if s.opts.ShowOrbits {
		for _, loop := range s.orbits {
			for i := 1; i < len(loop); i++ {
				rl.DrawLine3D(loop[i-1], loop[i], orbitColor)
			}
		}
	}
	for _, n := range s.nodes {
		pos := n.body.Position
		transform := rl.MatrixMultiply(rl.MatrixRotateY(n.body.Spin), rl.MatrixTranslate(pos[0], pos[1], pos[2]))
		rl.DrawMesh(n.mesh, n.mtl, transform)
	}
	if s.ring != nil {
		drawRing(s.ring)
	}
	if s.opts.ShowLabels {
		rl.DisableDepthMask()
		for _, n := range s.nodes {
			if n.label == nil || !rl.IsTextureValid(n.labelTex) {
				continue
			}
			pos := n.body.Position
			at := rl.NewVector3(pos[0], pos[1]+n.body.Desc.LabelOffset, pos[2])
			src := rl.NewRectangle(0, 0, float32(n.labelTex.Width), float32(n.labelTex.Height))
			size := rl.NewVector2(n.label.Scale[0], n.label.Scale[1])
			rl.DrawBillboardRec(s.Camera, n.labelTex, src, at, size, rl.White)
		}
		rl.DrawRenderBatchActive()
		rl.EnableDepthMask()
	}
	rl.EndMode3D()
}

// drawRing draws the ring flat around its parent, both faces, blended over what is behind it.
func drawRing(r *ring) {
	pos := r.parent.body.Position
	rl.DisableBackfaceCulling()
	rl.PushMatrix()
	rl.Translatef(pos[0], pos[1], pos[2])
	if rl.IsTextureValid(r.tex) {
		rl.SetTexture(r.tex.ID)
	}
	rl.Begin(rl.Triangles)
	rl.Color4ub(255, 255, 255, ringAlpha)
	for _, v := range r.verts {
		rl.TexCoord2f(v.UV[0], v.UV[1])
		rl.Vertex3f(v.Pos[0], v.Pos[1], v.Pos[2])
	}
	rl.End()
	rl.SetTexture(0)
	rl.PopMatrix()
	// Batched vertices are drawn at flush time, so flush while culling is still off.
	rl.DrawRenderBatchActive()
	rl.EnableBackfaceCulling()
}

// Unload frees GPU resources. Safe to call before the first Draw.
func (s *Scene) Unload() {
	if !s.gpuReady {
		return
	}
	for _, n := range s.nodes {
		// The material owns its albedo texture (n.tex) once SetMaterialTexture has run.
		n.mtl.Shader = n.base
		unloadMaterial(n.mtl)
		if rl.IsTextureValid(n.labelTex) {
			unloadTexture(n.labelTex)
		}
		unloadMesh(&n.mesh)
	}
	if s.ring != nil && rl.IsTextureValid(s.ring.tex) {
		unloadTexture(s.ring.tex)
	}
	s.gpuReady = false
	if s.litOK {
		s.lit.unload()
	}
}

// GPU release calls, replaced in tests.
var (
	unloadMaterial = rl.UnloadMaterial
	unloadTexture  = rl.UnloadTexture
	unloadMesh     = rl.UnloadMesh
)

// upload copies an RGBA image to a GPU texture.
func upload(img *image.RGBA) rl.Texture2D {
	if img == nil {
		return rl.Texture2D{}
	}
	rimg := rl.NewImageFromImage(img)
	tex := rl.LoadTextureFromImage(rimg)
	rl.UnloadImage(rimg)
	rl.SetTextureFilter(tex, rl.FilterBilinear)
	return tex
}

func rgba(c [4]uint8) color.RGBA {
	return color.RGBA{R: c[0], G: c[1], B: c[2], A: c[3]}
}

func toVectors(points [][3]float32) []rl.Vector3 {
	out := make([]rl.Vector3, len(points))
	for i, p := range points {
		out[i] = rl.NewVector3(p[0], p[1], p[2])
	}
	return out
}
