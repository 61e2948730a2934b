package system

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/rocketflight/behaviour"
	"github.com/milk9111/rocketflight/ecs"
	"github.com/milk9111/rocketflight/ecs/component"
)

var (
	debugBodyColor    = cp.FColor{R: 1, G: 1, B: 1, A: 0.9}
	debugContactColor = cp.FColor{R: 1, G: 0.9, B: 0.2, A: 1}
)

// debugCategoryColor colours a collider by what touching it does to the
// rocket.
func debugCategoryColor(c behaviour.Category) cp.FColor {
	switch c {
	case behaviour.CategoryFriendly:
		return cp.FColor{R: 0.3, G: 1, B: 0.3, A: 0.9}
	case behaviour.CategoryFinish:
		return cp.FColor{R: 0.3, G: 0.6, B: 1, A: 0.9}
	case behaviour.CategoryObstacle:
		return cp.FColor{R: 1, G: 0.3, B: 0.3, A: 0.9}
	default:
		return cp.FColor{R: 0.6, G: 0.6, B: 0.6, A: 0.9}
	}
}

// DrawDebug outlines every collider the system owns, coloured by category,
// plus the current contact points.
func (ps *PhysicsSystem) DrawDebug(w *ecs.World, screen *ebiten.Image) {
	if ps == nil || w == nil || screen == nil {
		return
	}
	cp.DrawSpace(ps.space, &physicsDebugDrawer{screen: screen, ps: ps, w: w})
}

type physicsDebugDrawer struct {
	screen *ebiten.Image
	ps     *PhysicsSystem
	w      *ecs.World
}

func (d *physicsDebugDrawer) DrawCircle(pos cp.Vector, _, radius float64, _, fill cp.FColor, _ interface{}) {
	vector.StrokeCircle(d.screen, float32(pos.X), float32(pos.Y), float32(radius), 1, toNRGBA(fill), false)
}

func (d *physicsDebugDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, _ interface{}) {
	d.line(a, b, fill)
}

func (d *physicsDebugDrawer) DrawFatSegment(a, b cp.Vector, _ float64, _, fill cp.FColor, _ interface{}) {
	d.line(a, b, fill)
}

func (d *physicsDebugDrawer) DrawPolygon(count int, verts []cp.Vector, _ float64, _, fill cp.FColor, _ interface{}) {
	for i := 0; i < count; i++ {
		d.line(verts[i], verts[(i+1)%count], fill)
	}
}

func (d *physicsDebugDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, _ interface{}) {
	s := float32(max(size, 3))
	vector.FillRect(d.screen, float32(pos.X)-s/2, float32(pos.Y)-s/2, s, s, toNRGBA(fill), false)
}

func (d *physicsDebugDrawer) Flags() uint {
	return cp.DRAW_SHAPES | cp.DRAW_COLLISION_POINTS
}

func (d *physicsDebugDrawer) OutlineColor() cp.FColor { return debugBodyColor }

// ShapeColor picks the colour for one collider. Dynamic bodies are white;
// everything else shows its collision category.
func (d *physicsDebugDrawer) ShapeColor(shape *cp.Shape, _ interface{}) cp.FColor {
	if body := shape.Body(); body != nil && body.GetType() == cp.BODY_DYNAMIC {
		return debugBodyColor
	}
	category := behaviour.CategoryUntagged
	if e, ok := d.ps.shapes[shape]; ok {
		if cat, ok := ecs.Get(d.w, e, component.CollisionCategoryComponent.Kind()); ok {
			category = cat.Category
		}
	}
	return debugCategoryColor(category)
}

func (d *physicsDebugDrawer) ConstraintColor() cp.FColor { return debugBodyColor }

func (d *physicsDebugDrawer) CollisionPointColor() cp.FColor { return debugContactColor }

func (d *physicsDebugDrawer) Data() interface{} { return nil }

func (d *physicsDebugDrawer) line(a, b cp.Vector, c cp.FColor) {
	vector.StrokeLine(d.screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 1, toNRGBA(c), false)
}

func toNRGBA(c cp.FColor) color.NRGBA {
	return color.NRGBA{
		R: uint8(min(max(c.R, 0), 1) * 255),
		G: uint8(min(max(c.G, 0), 1) * 255),
		B: uint8(min(max(c.B, 0), 1) * 255),
		A: uint8(min(max(c.A, 0), 1) * 255),
	}
}
