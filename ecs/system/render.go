package system

import (
	"image"
	"image/color"
	"math"
	"sort"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/rocketflight/ecs"
	"github.com/milk9111/rocketflight/ecs/component"
	"golang.org/x/image/colornames"
)

var (
	whiteOnce     sync.Once
	whiteSubImage *ebiten.Image
)

func whitePixel() *ebiten.Image {
	whiteOnce.Do(func() {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSubImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	})
	return whiteSubImage
}

type RenderSystem struct {
	vertices []ebiten.Vertex
	indices  []uint16
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	background := color.Color(colornames.Midnightblue)
	if e, ok := ecs.First(w, component.LevelInfoComponent.Kind()); ok {
		if info, ok := ecs.Get(w, e, component.LevelInfoComponent.Kind()); ok && info.Background != nil {
			background = info.Background
		}
	}
	screen.Fill(background)

	var entities []ecs.Entity
	ecs.ForEach2(w, component.ShapeComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.Shape, _ *component.Transform) {
		entities = append(entities, e)
	})
	sort.SliceStable(entities, func(i, j int) bool {
		li := 0
		if layer, ok := ecs.Get(w, entities[i], component.RenderLayerComponent.Kind()); ok {
			li = layer.Index
		}
		lj := 0
		if layer, ok := ecs.Get(w, entities[j], component.RenderLayerComponent.Kind()); ok {
			lj = layer.Index
		}
		if li != lj {
			return li < lj
		}
		return uint64(entities[i]) < uint64(entities[j])
	})

	for _, e := range entities {
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		s, _ := ecs.Get(w, e, component.ShapeComponent.Kind())
		r.drawShape(screen, t, s)
	}

	ecs.ForEach(w, component.ParticlesComponent.Kind(), func(_ ecs.Entity, particles *component.Particles) {
		for i := range particles.Emitters {
			drawParticles(screen, &particles.Emitters[i])
		}
	})
}

func (r *RenderSystem) drawShape(screen *ebiten.Image, t *component.Transform, s *component.Shape) {
	clr := s.Color
	if clr == nil {
		clr = colornames.White
	}
	sx, sy := t.ScaleX, t.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	hw, hh := s.Width*sx/2, s.Height*sy/2

	r.vertices = r.vertices[:0]
	r.indices = r.indices[:0]
	r.appendPolygon(t, clr, [][2]float64{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}})
	if s.Nose > 0 {
		r.appendPolygon(t, clr, [][2]float64{{-hw, -hh}, {0, -hh - s.Nose*sy}, {hw, -hh}})
	}
	screen.DrawTriangles(r.vertices, r.indices, whitePixel(), &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

// appendPolygon adds a convex polygon in local coordinates as a triangle fan.
func (r *RenderSystem) appendPolygon(t *component.Transform, clr color.Color, local [][2]float64) {
	sin, cos := math.Sincos(t.Rotation)
	cr, cg, cb, ca := clr.RGBA()
	base := uint16(len(r.vertices))
	for _, p := range local {
		r.vertices = append(r.vertices, ebiten.Vertex{
			DstX:   float32(t.X + p[0]*cos - p[1]*sin),
			DstY:   float32(t.Y + p[0]*sin + p[1]*cos),
			SrcX:   1,
			SrcY:   1,
			ColorR: float32(cr) / 0xffff,
			ColorG: float32(cg) / 0xffff,
			ColorB: float32(cb) / 0xffff,
			ColorA: float32(ca) / 0xffff,
		})
	}
	for i := 1; i+1 < len(local); i++ {
		r.indices = append(r.indices, base, base+uint16(i), base+uint16(i+1))
	}
}

func drawParticles(screen *ebiten.Image, em *component.ParticleEmitter) {
	if len(em.Particles) == 0 {
		return
	}
	clr := em.Color
	if clr == nil {
		clr = colornames.Orange
	}
	size := em.Size
	if size <= 0 {
		size = 3
	}
	for _, p := range em.Particles {
		fade := 1 - p.Age/p.Life
		vector.FillRect(screen, float32(p.X-size/2), float32(p.Y-size/2), float32(size), float32(size), fadeColor(clr, fade), false)
	}
}

func fadeColor(c color.Color, alpha float64) color.Color {
	r, g, b, a := c.RGBA()
	if alpha < 0 {
		alpha = 0
	}
	return color.RGBA64{
		R: uint16(float64(r) * alpha),
		G: uint16(float64(g) * alpha),
		B: uint16(float64(b) * alpha),
		A: uint16(float64(a) * alpha),
	}
}
