package core

import "github.com/go-gl/mathgl/mgl32"

var (
	ColorX         = [4]float32{0.9, 0.2, 0.2, 1}
	ColorY         = [4]float32{0.2, 0.9, 0.2, 1}
	ColorZ         = [4]float32{0.2, 0.4, 1.0, 1}
	ColorUniform   = [4]float32{0.9, 0.9, 0.9, 1}
	ColorActive    = [4]float32{1.0, 0.9, 0.1, 1}
	ColorSelected  = [4]float32{1.0, 0.55, 0.1, 1}
	ColorVertex    = [4]float32{0.85, 0.85, 0.85, 1}
	ColorEdge      = [4]float32{0.6, 0.7, 0.8, 1}
	ColorGrid      = [4]float32{0.35, 0.35, 0.38, 0.6}
	ColorGridAxis  = [4]float32{0.5, 0.5, 0.55, 0.9}
	ColorStaged    = [4]float32{0.3, 1.0, 1.0, 1}
	ColorMeshEdges = [4]float32{0.45, 0.5, 0.55, 0.8}
)

// LineSegment is a colored world-space line.
type LineSegment struct {
	From  mgl32.Vec3
	To    mgl32.Vec3
	Color [4]float32
}

// PointMarker is drawn as a small axis-aligned cross of half-extent Size.
type PointMarker struct {
	Position mgl32.Vec3
	Size     float32
	Color    [4]float32
}

// DrawList collects primitives for one frame.
type DrawList struct {
	Lines  []LineSegment
	Points []PointMarker
}

func (d *DrawList) DrawLines(lines []LineSegment) {
	d.Lines = append(d.Lines, lines...)
}

func (d *DrawList) DrawPoints(points []PointMarker) {
	d.Points = append(d.Points, points...)
}

func (d *DrawList) Reset() {
	d.Lines = d.Lines[:0]
	d.Points = d.Points[:0]
}

// MarkerLines expands a point marker into three line segments.
func MarkerLines(p PointMarker) [3]LineSegment {
	s := p.Size
	c := p.Position
	return [3]LineSegment{
		{From: c.Sub(mgl32.Vec3{s, 0, 0}), To: c.Add(mgl32.Vec3{s, 0, 0}), Color: p.Color},
		{From: c.Sub(mgl32.Vec3{0, s, 0}), To: c.Add(mgl32.Vec3{0, s, 0}), Color: p.Color},
		{From: c.Sub(mgl32.Vec3{0, 0, s}), To: c.Add(mgl32.Vec3{0, 0, s}), Color: p.Color},
	}
}
