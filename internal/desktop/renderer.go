package desktop

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"pigflight/internal/game"
	"pigflight/internal/scene"
)

// Floats per instance: mat4 world + vec3 colour.
const instanceFloats = 16 + 3

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

// lightDir points from the sun towards the ground.
var lightDir = mgl32.Vec3{-0.35, -1, 0.45}.Normalize()

type Renderer struct {
	// Box program.
	boxProg uint32
	boxVAO  uint32
	cubeVBO uint32
	instVBO uint32
	instCap int

	uViewProj   int32
	uEye        int32
	uLightDir   int32
	uAmbient    int32
	uFogColor   int32
	uFogDensity int32

	// HUD overlay.
	overlayProg uint32
	overlayVAO  uint32
	overlayTex  uint32
	overlayImg  *image.RGBA
	overlayText string
	overlayOK   bool

	// Reusable buffers to avoid per-frame heap allocations.
	instances []scene.Instance
	instBuf   []float32
}

func NewRenderer() (*Renderer, error) {
	boxProg, err := linkProgram(boxVertSrc, boxFragSrc)
	if err != nil {
		return nil, fmt.Errorf("box program: %w", err)
	}
	overlayProg, err := linkProgram(overlayVertSrc, overlayFragSrc)
	if err != nil {
		gl.DeleteProgram(boxProg)
		return nil, fmt.Errorf("overlay program: %w", err)
	}
	r := &Renderer{boxProg: boxProg, overlayProg: overlayProg}

	var vao, cube, inst uint32
	gl.GenVertexArrays(1, &vao)
	gl.GenBuffers(1, &cube)
	gl.GenBuffers(1, &inst)
	gl.BindVertexArray(vao)

	verts := cubeVertices()
	gl.BindBuffer(gl.ARRAY_BUFFER, cube)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(&verts[0]), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0) // aPos
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 6*4, glOffset(0))
	gl.EnableVertexAttribArray(1) // aNormal
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, 6*4, glOffset(3*4))

	gl.BindBuffer(gl.ARRAY_BUFFER, inst)
	stride := int32(instanceFloats * 4)
	for col := uint32(0); col < 4; col++ { // aWorld columns
		loc := 2 + col
		gl.EnableVertexAttribArray(loc)
		gl.VertexAttribPointer(loc, 4, gl.FLOAT, false, stride, glOffset(int(col)*4*4))
		gl.VertexAttribDivisor(loc, 1)
	}
	gl.EnableVertexAttribArray(6) // aColor
	gl.VertexAttribPointer(6, 3, gl.FLOAT, false, stride, glOffset(16*4))
	gl.VertexAttribDivisor(6, 1)
	r.boxVAO, r.cubeVBO, r.instVBO = vao, cube, inst

	gl.UseProgram(boxProg)
	r.uViewProj = gl.GetUniformLocation(boxProg, gl.Str("uViewProj\x00"))
	r.uEye = gl.GetUniformLocation(boxProg, gl.Str("uEye\x00"))
	r.uLightDir = gl.GetUniformLocation(boxProg, gl.Str("uLightDir\x00"))
	r.uAmbient = gl.GetUniformLocation(boxProg, gl.Str("uAmbient\x00"))
	r.uFogColor = gl.GetUniformLocation(boxProg, gl.Str("uFogColor\x00"))
	r.uFogDensity = gl.GetUniformLocation(boxProg, gl.Str("uFogDensity\x00"))
	gl.Uniform3f(r.uLightDir, lightDir.X(), lightDir.Y(), lightDir.Z())
	gl.Uniform1f(r.uAmbient, 1.0)

	// Overlay: empty VAO, the quad comes from gl_VertexID.
	gl.GenVertexArrays(1, &r.overlayVAO)
	gl.GenTextures(1, &r.overlayTex)
	gl.BindTexture(gl.TEXTURE_2D, r.overlayTex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.UseProgram(overlayProg)
	gl.Uniform1i(gl.GetUniformLocation(overlayProg, gl.Str("uTex\x00")), 0)

	gl.BindVertexArray(0)
	return r, nil
}

func (r *Renderer) Destroy() {
	for _, id := range []uint32{r.cubeVBO, r.instVBO} {
		if id != 0 {
			gl.DeleteBuffers(1, &id)
		}
	}
	for _, id := range []uint32{r.boxVAO, r.overlayVAO} {
		if id != 0 {
			gl.DeleteVertexArrays(1, &id)
		}
	}
	for _, id := range []uint32{r.boxProg, r.overlayProg} {
		if id != 0 {
			gl.DeleteProgram(id)
		}
	}
	if r.overlayTex != 0 {
		gl.DeleteTextures(1, &r.overlayTex)
	}
}

// DrawScene clears to the sky colour and draws every instance the camera
// can see in one instanced call.
func (r *Renderer) DrawScene(g *scene.Graph, fbW, fbH int) {
	a := g.Atmosphere()
	sr, sg, sb := a.Sky.Floats()
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	gl.ClearColor(sr, sg, sb, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	focus, ok := g.Focus()
	if !ok {
		return
	}
	cam := scene.Chase(focus)
	r.instances = g.AppendInstances(r.instances[:0], cam.Cull())
	if len(r.instances) == 0 {
		return
	}
	r.upload(r.instances)

	viewProj := scene.Projection(float32(fbW) / float32(fbH)).Mul4(cam.View())
	fr, fg, fb := a.Fog.Floats()

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.FrontFace(gl.CW) // the view is mirrored, see scene.Camera.View
	gl.UseProgram(r.boxProg)
	gl.UniformMatrix4fv(r.uViewProj, 1, false, &viewProj[0])
	gl.Uniform3f(r.uEye, cam.Eye.X(), cam.Eye.Y(), cam.Eye.Z())
	gl.Uniform1f(r.uAmbient, float32(a.Ambient))
	gl.Uniform3f(r.uFogColor, fr, fg, fb)
	gl.Uniform1f(r.uFogDensity, float32(a.FogDensity))
	gl.BindVertexArray(r.boxVAO)
	gl.DrawArraysInstanced(gl.TRIANGLES, 0, 36, int32(len(r.instances)))
	gl.BindVertexArray(0)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.DEPTH_TEST)
}

func (r *Renderer) upload(list []scene.Instance) {
	r.instBuf = r.instBuf[:0]
	for _, in := range list {
		r.instBuf = append(r.instBuf, in.World[:]...)
		r.instBuf = append(r.instBuf, in.Color[:]...)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, r.instVBO)
	size := len(r.instBuf) * 4
	if len(list) > r.instCap {
		r.instCap = len(list) * 2
		gl.BufferData(gl.ARRAY_BUFFER, r.instCap*instanceFloats*4, nil, gl.STREAM_DRAW)
	}
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, gl.Ptr(&r.instBuf[0]))
}

// DrawHUD blends the text overlay over the frame. The texture is only
// re-rasterised when the text or the framebuffer size changes.
func (r *Renderer) DrawHUD(h game.HUD, fbW, fbH int) {
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.overlayTex)
	if r.overlayImg == nil || r.overlayImg.Bounds().Dx() != fbW || r.overlayImg.Bounds().Dy() != fbH {
		r.overlayImg = image.NewRGBA(image.Rect(0, 0, fbW, fbH))
		r.overlayOK = false
	}
	text := scene.OverlayText(h)
	if !r.overlayOK || text != r.overlayText {
		scene.RenderOverlay(r.overlayImg, h)
		gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8,
			int32(fbW), int32(fbH), 0,
			gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(r.overlayImg.Pix))
		r.overlayText = text
		r.overlayOK = true
	}

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.UseProgram(r.overlayProg)
	gl.BindVertexArray(r.overlayVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)
	gl.BindVertexArray(0)
	gl.Disable(gl.BLEND)
}

// cubeVertices is the unit cube centred on the origin: 36 vertices of
// position + normal, counter-clockwise from outside.
func cubeVertices() []float32 {
	faces := [6]struct{ n, u, v mgl32.Vec3 }{
		{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, 1}},
		{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}},
		{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}},
		{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}},
	}
	out := make([]float32, 0, 36*6)
	for _, f := range faces {
		c := f.n.Mul(0.5)
		u, v := f.u.Mul(0.5), f.v.Mul(0.5)
		corners := [4]mgl32.Vec3{
			c.Sub(u).Sub(v), c.Add(u).Sub(v), c.Add(u).Add(v), c.Sub(u).Add(v),
		}
		for _, i := range [6]int{0, 1, 2, 0, 2, 3} {
			p := corners[i]
			out = append(out, p.X(), p.Y(), p.Z(), f.n.X(), f.n.Y(), f.n.Z())
		}
	}
	return out
}
