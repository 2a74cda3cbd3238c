package game

import (
	"image/color"
	"sort"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"placer/internal/camera"
	"placer/internal/engine"
	"placer/internal/physics"
	"placer/internal/placement"
	"placer/internal/viewport"
)

// view renders one viewport into its own texture so each camera projects
// around the centre of its rectangle.
type view struct {
	rect   viewport.Rect
	target rl.RenderTexture2D
}

func newView(r viewport.Rect) *view {
	v := &view{rect: r}
	v.target = rl.LoadRenderTexture(int32(r.W), int32(r.H))
	return v
}

func (v *view) resize(r viewport.Rect) {
	rl.UnloadRenderTexture(v.target)
	v.rect = r
	v.target = rl.LoadRenderTexture(int32(r.W), int32(r.H))
}

func (v *view) unload() {
	rl.UnloadRenderTexture(v.target)
}

func (v *view) render(cam *camera.Camera, draw func()) {
	rl.BeginTextureMode(v.target)
	rl.ClearBackground(colorBgPanel)
	rl.BeginMode3D(raylibCamera(cam))
	draw()
	rl.EndMode3D()
	rl.EndTextureMode()
}

// blit draws the texture flipped, as render textures are stored bottom-up.
func (v *view) blit() {
	src := rl.Rectangle{X: 0, Y: 0, Width: float32(v.target.Texture.Width), Height: -float32(v.target.Texture.Height)}
	rl.DrawTextureRec(v.target.Texture, src, rl.Vector2{X: v.rect.X, Y: v.rect.Y}, rl.White)
}

func vec3(v mgl32.Vec3) rl.Vector3 {
	return rl.NewVector3(v.X(), v.Y(), v.Z())
}

func raylibCamera(c *camera.Camera) rl.Camera3D {
	proj := rl.CameraPerspective
	if c.Projection == camera.Orthographic {
		proj = rl.CameraOrthographic
	}
	return rl.Camera3D{
		Position:   vec3(c.Position),
		Target:     vec3(c.Target),
		Up:         vec3(c.Up),
		Fovy:       c.Fovy,
		Projection: proj,
	}
}

// drawScene draws every visible mesh as a box of its world bounds, opaque
// meshes first and higher render orders last.
func drawScene(s *engine.Scene) {
	var meshes []*engine.Mesh
	s.Walk(func(n engine.Node) bool {
		if !n.Base().Visible {
			return false
		}
		if m, ok := n.(*engine.Mesh); ok {
			meshes = append(meshes, m)
		}
		return true
	})
	sort.SliceStable(meshes, func(i, j int) bool {
		return meshes[i].RenderOrder < meshes[j].RenderOrder
	})

	for _, m := range meshes {
		b := physics.MeshBounds(m)
		center, size := vec3(b.Center()), vec3(b.Size())
		col := meshColor(m.Material)
		rl.DrawCubeV(center, size, col)
		rl.DrawCubeWiresV(center, size, rl.Fade(col, 0.8))
	}
}

func meshColor(mat engine.Material) rl.Color {
	c := engine.ColorOf(mat)
	if mat != nil && mat.GetOpacity() < 1 {
		c.A = uint8(float32(c.A) * mat.GetOpacity())
	}
	return c
}

func drawVolumes(vols []placement.Volume, c color.RGBA) {
	for _, v := range vols {
		rl.DrawBoundingBox(rl.BoundingBox{Min: vec3(v.Bounds.Min), Max: vec3(v.Bounds.Max)}, c)
		for _, p := range v.Corners {
			rl.DrawSphere(vec3(p), 0.05, c)
		}
	}
}
