package editor

import (
	"fmt"

	"github.com/gekko3d/modeler/rt/core"
	"github.com/gekko3d/modeler/rt/model"

	"github.com/go-gl/mathgl/mgl32"
)

// Change names what an input or command modified. The editor queues changes
// and hands them out once per frame from Update.
type Change int

const (
	ChangeMode Change = iota
	ChangeSelection
	ChangeModel
	ChangeFile
	ChangeOpenRequested
)

func (c Change) String() string {
	switch c {
	case ChangeMode:
		return "mode"
	case ChangeSelection:
		return "selection"
	case ChangeModel:
		return "model"
	case ChangeFile:
		return "file"
	case ChangeOpenRequested:
		return "open-requested"
	}
	return fmt.Sprintf("Change(%d)", int(c))
}

// ModelStore is the file collaborator used by LoadModel and SaveModel.
type ModelStore interface {
	Load(path string) (*model.Model, error)
	Save(m *model.Model, path string) error
}

// Renderer receives the frame's overlay geometry.
type Renderer interface {
	DrawLines(lines []core.LineSegment)
	DrawPoints(points []core.PointMarker)
}

type Config struct {
	PickRadius       float32 `toml:"pick_radius"`       // world units
	FallbackDistance float32 `toml:"fallback_distance"` // AddVertex distance when the ground is missed
	GizmoPixels      float32 `toml:"gizmo_pixels"`
	GizmoTolerance   float32 `toml:"gizmo_tolerance"`
	PanelWidth       float32 `toml:"panel_width"` // left strip owned by the UI
	OrbitSensitivity float32 `toml:"orbit_sensitivity"`
	PanSensitivity   float32 `toml:"pan_sensitivity"`
	GridHalfExtent   int     `toml:"grid_half_extent"`
	GridStep         float32 `toml:"grid_step"`
	MarkerSize       float32 `toml:"marker_size"`
}

func DefaultConfig() Config {
	return Config{
		PickRadius:       0.5,
		FallbackDistance: 10,
		GizmoPixels:      DefaultGizmoPixels,
		GizmoTolerance:   DefaultGizmoTolerance,
		PanelWidth:       220,
		OrbitSensitivity: DefaultOrbitSensitivity,
		PanSensitivity:   DefaultPanSensitivity,
		GridHalfExtent:   10,
		GridStep:         1,
		MarkerSize:       0.05,
	}
}

const maxPickDistance = 1000

// Editor sequences input into selection changes, gizmo drags and model edits.
// It is driven from a single thread: HandleInput, Update and Render are
// called in that order each frame.
type Editor struct {
	log   core.Logger
	cfg   Config
	store ModelStore

	camera     *core.OrbitCamera
	controller *CameraController
	tools      *Tools
	model      *model.Model
	selection  *Selection

	staging    []uint32
	showMeshes bool
	filePath   string
	status     string
	dragLast   mgl32.Vec2

	observers []func(Change)
	pending   []Change
}

func New(cfg Config, cam *core.OrbitCamera, log core.Logger) *Editor {
	if cam == nil {
		cam = core.NewOrbitCamera()
	}
	e := &Editor{
		log:        core.OrNop(log),
		cfg:        cfg,
		store:      model.FileStore{},
		camera:     cam,
		controller: NewCameraController(cam),
		tools:      NewTools(),
		model:      model.New(),
		selection:  NewSelection(),
		showMeshes: true,
	}
	e.controller.OrbitSensitivity = cfg.OrbitSensitivity
	e.controller.PanSensitivity = cfg.PanSensitivity
	e.tools.Hit = HitTester{PixelSize: cfg.GizmoPixels, Tolerance: cfg.GizmoTolerance}
	return e
}

func (e *Editor) SetStore(s ModelStore) { e.store = s }

func (e *Editor) Camera() *core.OrbitCamera { return e.camera }
func (e *Editor) Model() *model.Model       { return e.model }
func (e *Editor) Selection() *Selection     { return e.selection }
func (e *Editor) Tools() *Tools             { return e.tools }
func (e *Editor) Mode() Mode                { return e.tools.Mode() }
func (e *Editor) FilePath() string          { return e.filePath }
func (e *Editor) Status() string            { return e.status }
func (e *Editor) ShowMeshes() bool          { return e.showMeshes }

// Staged returns the vertex ids picked so far for the next triangle.
func (e *Editor) Staged() []uint32 {
	return append([]uint32(nil), e.staging...)
}

// Subscribe registers fn to receive every change flushed by Update.
func (e *Editor) Subscribe(fn func(Change)) {
	e.observers = append(e.observers, fn)
}

func (e *Editor) notify(changes ...Change) {
	for _, c := range changes {
		dup := false
		for _, p := range e.pending {
			if p == c {
				dup = true
				break
			}
		}
		if !dup {
			e.pending = append(e.pending, c)
		}
	}
}

// DrainChanges returns the queued changes without delivering them to
// subscribers.
func (e *Editor) DrainChanges() []Change {
	if len(e.pending) == 0 {
		return nil
	}
	changes := e.pending
	e.pending = nil
	return changes
}

// Update flushes queued changes to subscribers and returns them.
func (e *Editor) Update(dt float32) []Change {
	changes := e.DrainChanges()
	for _, c := range changes {
		for _, fn := range e.observers {
			fn(c)
		}
	}
	return changes
}

func (e *Editor) setStatus(format string, args ...any) {
	e.status = fmt.Sprintf(format, args...)
	e.notify(ChangeFile)
}

// SetMode always succeeds. Any drag in progress is dropped.
func (e *Editor) SetMode(mode Mode) {
	prev := e.tools.Mode()
	e.tools.SetMode(mode)
	if prev == ModeCreateTriangle && mode != ModeCreateTriangle && len(e.staging) > 0 {
		e.staging = nil
		e.notify(ChangeSelection)
	}
	if mode.IsTransform() {
		e.refreshPivot()
	}
	if prev != mode {
		e.log.Debugf("mode %s -> %s", prev, mode)
		e.notify(ChangeMode)
	}
}

func (e *Editor) ClearSelection() {
	e.tools.End()
	e.selection.Clear()
	e.staging = nil
	e.notify(ChangeSelection)
}

func (e *Editor) hasTransformTarget() bool {
	return e.selection.HasMesh() || e.selection.HasCustomVertices()
}

// refreshPivot moves the gizmo to the centroid of the current selection.
func (e *Editor) refreshPivot() {
	switch e.selection.Kind() {
	case SelectionCustom:
		if c, ok := e.model.Centroid(e.selection.CustomVertexIDs()); ok {
			e.tools.SetPosition(c)
		}
	case SelectionMesh:
		meshID, _ := e.selection.MeshID()
		if idx, ok := e.selection.VertexIndex(); ok {
			if p, ok := e.model.MeshVertex(meshID, idx); ok {
				e.tools.SetPosition(p)
			}
			return
		}
		if face, ok := e.selection.FaceIndex(); ok {
			if mesh, ok := e.model.Mesh(meshID); ok {
				if a, b, c, ok := mesh.Triangle(int(face)); ok {
					e.tools.SetPosition(a.Add(b).Add(c).Mul(1.0 / 3))
				}
			}
			return
		}
		if mesh, ok := e.model.Mesh(meshID); ok {
			if c, ok := mesh.Centroid(); ok {
				e.tools.SetPosition(c)
			}
		}
	}
}

func (e *Editor) inViewport(p mgl32.Vec2) bool {
	return p.X() >= e.cfg.PanelWidth
}

func (e *Editor) pickRay(p mgl32.Vec2) (Ray, bool) {
	return ScreenToWorldRay(p, e.camera.Viewport, e.camera.ViewMatrix(), e.camera.ProjectionMatrix())
}

// HandleInput processes one event and reports whether it was consumed.
func (e *Editor) HandleInput(ev InputEvent) bool {
	// a gizmo drag owns the mouse until release
	if (ev.Type == EventResize || !e.tools.Interacting()) && e.controller.HandleInput(ev) {
		return true
	}

	switch ev.Type {
	case EventKeyDown:
		return e.handleKey(ev)
	case EventMouseDown:
		if ev.Button != MouseLeft || !e.inViewport(ev.Pos()) {
			return false
		}
		return e.handleClick(ev)
	case EventMouseMove:
		if !e.tools.Interacting() {
			return false
		}
		delta := ev.Pos().Sub(e.dragLast)
		e.dragLast = ev.Pos()
		e.applyDrag(delta)
		return true
	case EventMouseUp:
		if ev.Button != MouseLeft {
			return false
		}
		return e.tools.End()
	}
	return false
}

func (e *Editor) handleKey(ev InputEvent) bool {
	ctrl := ev.Mods.Has(ModControl)
	switch ev.Key {
	case KeyEscape:
		e.SetMode(ModeSelect)
		e.ClearSelection()
	case KeyG:
		e.SetMode(ModeMove)
	case KeyR:
		if ctrl {
			e.ReverseSelectedWinding()
		} else {
			e.SetMode(ModeRotate)
		}
	case KeyS:
		if ctrl {
			e.SaveModel("")
		} else {
			e.SetMode(ModeScale)
		}
	case KeyV:
		e.SetMode(ModeAddVertex)
	case KeyT:
		e.SetMode(ModeCreateTriangle)
	case KeyN:
		if !ctrl {
			return false
		}
		e.NewModel()
	case KeyO:
		if !ctrl {
			return false
		}
		e.notify(ChangeOpenRequested)
	case KeyP:
		e.showMeshes = !e.showMeshes
	case KeyDelete:
		e.DeleteSelected()
	default:
		return false
	}
	return true
}

func (e *Editor) handleClick(ev InputEvent) bool {
	pos := ev.Pos()
	switch mode := e.tools.Mode(); mode {
	case ModeSelect:
		e.selectAt(pos, ev.Mods)
		return true
	case ModeMove, ModeRotate, ModeScale:
		if !e.hasTransformTarget() {
			return false
		}
		e.refreshPivot()
		if !e.tools.Begin(pos, e.camera.ViewMatrix(), e.camera.ProjectionMatrix(), e.camera.Viewport) {
			e.log.Debugf("%s: no gizmo handle at %v", mode, pos)
			return false
		}
		e.dragLast = pos
		return true
	case ModeAddVertex:
		e.addVertexAt(pos)
		return true
	case ModeCreateTriangle:
		e.stageVertexAt(pos)
		return true
	}
	return false
}

func (e *Editor) selectAt(pos mgl32.Vec2, mods Modifier) {
	ray, ok := e.pickRay(pos)
	if !ok {
		return
	}
	additive := mods.Has(ModShift)

	if mods.Has(ModControl) {
		ref, ok := e.pickTriangle(ray)
		if !ok {
			e.log.Debugf("select: no triangle under %v", pos)
			return
		}
		e.selection.ToggleTriangle(ref, additive)
		e.notify(ChangeSelection)
		return
	}

	if id := e.pickCustomVertex(ray); id != 0 {
		e.selection.ToggleCustomVertex(id, additive)
		e.refreshPivot()
		e.notify(ChangeSelection)
		return
	}
	if meshID, ok := e.selection.MeshID(); ok {
		if idx, ok := e.pickMeshVertex(ray, meshID); ok {
			e.selection.SelectVertex(meshID, idx)
			e.refreshPivot()
			e.notify(ChangeSelection)
			return
		}
		if face, ok := e.pickMeshFace(ray, meshID); ok {
			e.selection.SelectFace(meshID, face)
			e.refreshPivot()
			e.notify(ChangeSelection)
			return
		}
	}
	if meshID, ok := e.pickMesh(ray); ok {
		e.selection.SelectMesh(meshID)
		e.refreshPivot()
		e.notify(ChangeSelection)
		return
	}
	e.log.Debugf("select: nothing under %v", pos)
}

// pickCustomVertex returns the custom vertex nearest to the ray within the
// pick radius, or 0.
func (e *Editor) pickCustomVertex(ray Ray) uint32 {
	best := uint32(0)
	bestDist := e.cfg.PickRadius
	for _, v := range e.model.CustomVertices() {
		d, along := DistanceToRay(ray, v.Position)
		if along <= 0 || d >= bestDist {
			continue
		}
		best, bestDist = v.ID, d
	}
	return best
}

// pickMeshVertex returns the vertex of meshID within the pick radius of the
// ray that lies closest to the camera.
func (e *Editor) pickMeshVertex(ray Ray, meshID int) (uint32, bool) {
	mesh, ok := e.model.Mesh(meshID)
	if !ok {
		return 0, false
	}
	best, found := uint32(0), false
	bestAlong := float32(maxPickDistance)
	for i, p := range mesh.Positions {
		d, along := DistanceToRay(ray, p)
		if along <= 0 || along > bestAlong || d >= e.cfg.PickRadius {
			continue
		}
		best, bestAlong, found = uint32(i), along, true
	}
	return best, found
}

// pickMeshFace returns the triangle of meshID nearest along the ray.
func (e *Editor) pickMeshFace(ray Ray, meshID int) (uint32, bool) {
	mesh, ok := e.model.Mesh(meshID)
	if !ok {
		return 0, false
	}
	best, found := uint32(0), false
	bestT := float32(maxPickDistance)
	for tri := 0; tri < mesh.TriangleCount(); tri++ {
		a, b, c, ok := mesh.Triangle(tri)
		if !ok {
			continue
		}
		if t, hit := IntersectTriangle(ray, a, b, c); hit && t < bestT {
			best, bestT, found = uint32(tri), t, true
		}
	}
	return best, found
}

func (e *Editor) pickMesh(ray Ray) (int, bool) {
	best, found := 0, false
	bestT := float32(maxPickDistance)
	for id := 0; id < e.model.MeshCount(); id++ {
		mesh, _ := e.model.Mesh(id)
		for tri := 0; tri < mesh.TriangleCount(); tri++ {
			a, b, c, ok := mesh.Triangle(tri)
			if !ok {
				continue
			}
			if t, hit := IntersectTriangle(ray, a, b, c); hit && t < bestT {
				best, bestT, found = id, t, true
			}
		}
	}
	return best, found
}

func (e *Editor) pickTriangle(ray Ray) (model.TriangleRef, bool) {
	var best model.TriangleRef
	found := false
	bestT := float32(maxPickDistance)
	try := func(ref model.TriangleRef) {
		a, b, c, ok := e.model.TrianglePositions(ref)
		if !ok {
			return
		}
		if t, hit := IntersectTriangle(ray, a, b, c); hit && t < bestT {
			best, bestT, found = ref, t, true
		}
	}
	for _, tri := range e.model.CustomTriangles() {
		try(model.CustomTriangleRef(tri.ID))
	}
	if e.showMeshes {
		for id := 0; id < e.model.MeshCount(); id++ {
			mesh, _ := e.model.Mesh(id)
			for tri := 0; tri < mesh.TriangleCount(); tri++ {
				try(model.MeshTriangleRef(id, uint32(tri)))
			}
		}
	}
	return best, found
}

func (e *Editor) applyDrag(delta mgl32.Vec2) {
	var op mgl32.Mat4
	switch e.tools.Mode() {
	case ModeMove:
		d := e.tools.Translation(delta)
		if d == (mgl32.Vec3{}) {
			return
		}
		op = mgl32.Translate3D(d.X(), d.Y(), d.Z())
	case ModeRotate:
		aa := e.tools.Rotation(delta)
		if aa == (mgl32.Vec3{}) {
			return
		}
		op = RotationMatrix(aa)
	case ModeScale:
		s := e.tools.Scale(delta)
		if s == (mgl32.Vec3{1, 1, 1}) {
			return
		}
		op = mgl32.Scale3D(s.X(), s.Y(), s.Z())
	default:
		return
	}
	e.applyTransform(op)
}

// applyTransform applies op to the selection. Custom vertices transform
// around their centroid, computed fresh on every call. Mesh selections use
// the world origin.
func (e *Editor) applyTransform(op mgl32.Mat4) {
	switch e.selection.Kind() {
	case SelectionCustom:
		ids := e.selection.CustomVertexIDs()
		center, ok := e.model.Centroid(ids)
		if !ok {
			return
		}
		e.model.TransformCustomVertices(ids, model.PivotTransform(center, op))
	case SelectionMesh:
		meshID, _ := e.selection.MeshID()
		var err error
		if idx, ok := e.selection.VertexIndex(); ok {
			err = e.model.TransformVertices(meshID, []uint32{idx}, op)
		} else if face, ok := e.selection.FaceIndex(); ok {
			err = e.model.TransformFace(meshID, face, op)
		} else {
			err = e.model.TransformMesh(meshID, op)
		}
		if err != nil {
			e.log.Warnf("transform: %v", err)
			return
		}
	default:
		return
	}
	e.refreshPivot()
	e.notify(ChangeModel)
}

// addVertexAt drops a vertex on the ground plane under the cursor, or at a
// fixed distance along the ray when the plane is missed.
func (e *Editor) addVertexAt(pos mgl32.Vec2) {
	ray, ok := e.pickRay(pos)
	if !ok {
		return
	}
	p, ok := IntersectGroundPlane(ray)
	if !ok {
		p = ray.At(e.cfg.FallbackDistance)
		e.log.Debugf("add vertex: ground plane missed, placing at %v", p)
	}
	id := e.model.AddCustomVertex(p)
	e.log.Debugf("add vertex %d at %v", id, p)
	e.notify(ChangeModel)
}

func (e *Editor) stageVertexAt(pos mgl32.Vec2) {
	ray, ok := e.pickRay(pos)
	if !ok {
		return
	}
	id := e.pickCustomVertex(ray)
	if id == 0 {
		e.log.Debugf("create triangle: no vertex under %v", pos)
		return
	}

	for i, s := range e.staging {
		if s == id {
			e.staging = append(e.staging[:i], e.staging[i+1:]...)
			e.notify(ChangeSelection)
			return
		}
	}
	e.staging = append(e.staging, id)
	e.notify(ChangeSelection)
	if len(e.staging) < 3 {
		return
	}

	tri := e.model.AddCustomTriangle(e.staging[0], e.staging[1], e.staging[2])
	e.staging = nil
	if tri == 0 {
		e.log.Debugf("create triangle: rejected vertices")
		return
	}
	e.log.Debugf("created triangle %d", tri)
	e.notify(ChangeModel)
}

// ReverseSelectedWinding flips every selected triangle and returns how many
// were flipped.
func (e *Editor) ReverseSelectedWinding() int {
	n := 0
	for _, ref := range e.selection.Triangles() {
		if e.model.ReverseWinding(ref) {
			n++
		}
	}
	if n > 0 {
		e.setStatus("Reversed %d triangle(s)", n)
		e.notify(ChangeModel)
	}
	return n
}

// DeleteSelected removes the selected custom vertices, the triangles that
// use them and any selected custom triangles. Returns the number of
// vertices and triangles removed.
func (e *Editor) DeleteSelected() int {
	n := 0
	for _, id := range e.selection.CustomVertexIDs() {
		if e.model.RemoveCustomVertex(id) {
			n++
		}
	}
	for _, ref := range e.selection.Triangles() {
		if ref.IsCustom() && e.model.RemoveCustomTriangle(ref.Index) {
			n++
		}
	}
	if n == 0 {
		return 0
	}
	e.selection.Prune(e.model)
	e.pruneStaging()
	e.notify(ChangeModel, ChangeSelection)
	return n
}

// pruneStaging drops staged picks whose vertex is gone.
func (e *Editor) pruneStaging() {
	kept := e.staging[:0]
	for _, id := range e.staging {
		if e.model.HasCustomVertex(id) {
			kept = append(kept, id)
		}
	}
	e.staging = kept
}

// LoadModel replaces the model with the file at path. On failure the
// current model is kept and the status line explains why.
func (e *Editor) LoadModel(path string) bool {
	if path == "" {
		e.setStatus("Load failed: no file selected")
		return false
	}
	m, err := e.store.Load(path)
	if err != nil {
		e.log.Warnf("load %s: %v", path, err)
		e.setStatus("Load failed: %v", err)
		return false
	}
	e.model = m
	e.filePath = path
	e.tools.End()
	e.selection.Clear()
	e.staging = nil
	e.log.Infof("loaded %s (%d meshes, %d vertices)", path, m.MeshCount(), len(m.CustomVertices()))
	e.setStatus("Loaded %s", path)
	e.notify(ChangeModel, ChangeSelection)
	return true
}

// SaveModel writes the model to path, or to the current file when path is
// empty.
func (e *Editor) SaveModel(path string) bool {
	if path == "" {
		path = e.filePath
	}
	if path == "" {
		e.setStatus("Save failed: no file path")
		return false
	}
	if err := e.store.Save(e.model, path); err != nil {
		e.log.Warnf("save %s: %v", path, err)
		e.setStatus("Save failed: %v", err)
		return false
	}
	e.model.MarkClean()
	e.filePath = path
	e.log.Infof("saved %s", path)
	e.setStatus("Saved %s", path)
	return true
}

// SetFilePath names the file the next empty-path save writes to.
func (e *Editor) SetFilePath(path string) {
	e.filePath = path
	e.notify(ChangeFile)
}

func (e *Editor) NewModel() bool {
	e.model.Clear()
	e.filePath = ""
	e.ClearSelection()
	e.tools.SetPosition(mgl32.Vec3{})
	e.setStatus("New model")
	e.notify(ChangeModel)
	return true
}

// Render emits the grid, model overlay and gizmo for the current frame.
func (e *Editor) Render(r Renderer) {
	var lines []core.LineSegment
	var points []core.PointMarker

	lines = e.appendGrid(lines)
	if e.showMeshes {
		lines = e.appendMeshEdges(lines)
	}
	lines = e.appendCustomTriangles(lines)
	points = e.appendVertexMarkers(points)

	if e.tools.Mode().IsTransform() && e.hasTransformTarget() {
		pivot := e.tools.Position()
		size := e.tools.Hit.WorldSize(pivot, e.camera.ViewMatrix(), e.camera.ProjectionMatrix(), e.camera.Viewport)
		gl, gp := GizmoGeometry(e.tools.Mode(), pivot, size, e.tools.ActiveAxis())
		lines = append(lines, gl...)
		points = append(points, gp...)
	}

	r.DrawLines(lines)
	r.DrawPoints(points)
}

func (e *Editor) appendGrid(lines []core.LineSegment) []core.LineSegment {
	n := e.cfg.GridHalfExtent
	step := e.cfg.GridStep
	if n <= 0 || step <= 0 {
		return lines
	}
	ext := float32(n) * step
	for i := -n; i <= n; i++ {
		c := float32(i) * step
		color := core.ColorGrid
		if i == 0 {
			color = core.ColorGridAxis
		}
		lines = append(lines,
			core.LineSegment{From: mgl32.Vec3{c, 0, -ext}, To: mgl32.Vec3{c, 0, ext}, Color: color},
			core.LineSegment{From: mgl32.Vec3{-ext, 0, c}, To: mgl32.Vec3{ext, 0, c}, Color: color},
		)
	}
	return lines
}

func triangleEdges(lines []core.LineSegment, a, b, c mgl32.Vec3, color [4]float32) []core.LineSegment {
	return append(lines,
		core.LineSegment{From: a, To: b, Color: color},
		core.LineSegment{From: b, To: c, Color: color},
		core.LineSegment{From: c, To: a, Color: color},
	)
}

func (e *Editor) appendMeshEdges(lines []core.LineSegment) []core.LineSegment {
	selected, hasMesh := e.selection.MeshID()
	for id := 0; id < e.model.MeshCount(); id++ {
		mesh, _ := e.model.Mesh(id)
		for tri := 0; tri < mesh.TriangleCount(); tri++ {
			a, b, c, ok := mesh.Triangle(tri)
			if !ok {
				continue
			}
			color := core.ColorMeshEdges
			switch {
			case e.selection.HasTriangle(model.MeshTriangleRef(id, uint32(tri))):
				color = core.ColorActive
			case hasMesh && selected == id:
				color = core.ColorSelected
			}
			lines = triangleEdges(lines, a, b, c, color)
		}
	}
	return lines
}

func (e *Editor) appendCustomTriangles(lines []core.LineSegment) []core.LineSegment {
	for _, tri := range e.model.CustomTriangles() {
		a, b, c, ok := e.model.CustomTrianglePositions(tri.ID)
		if !ok {
			continue
		}
		color := core.ColorEdge
		if e.selection.HasTriangle(model.CustomTriangleRef(tri.ID)) {
			color = core.ColorActive
		}
		lines = triangleEdges(lines, a, b, c, color)
	}
	return lines
}

func (e *Editor) appendVertexMarkers(points []core.PointMarker) []core.PointMarker {
	staged := make(map[uint32]bool, len(e.staging))
	for _, id := range e.staging {
		staged[id] = true
	}
	for _, v := range e.model.CustomVertices() {
		color := core.ColorVertex
		switch {
		case staged[v.ID]:
			color = core.ColorStaged
		case e.selection.HasCustomVertex(v.ID):
			color = core.ColorSelected
		}
		points = append(points, core.PointMarker{Position: v.Position, Size: e.cfg.MarkerSize * e.camera.Radius, Color: color})
	}
	if meshID, ok := e.selection.MeshID(); ok {
		if idx, ok := e.selection.VertexIndex(); ok {
			if p, ok := e.model.MeshVertex(meshID, idx); ok {
				points = append(points, core.PointMarker{Position: p, Size: e.cfg.MarkerSize * e.camera.Radius, Color: core.ColorSelected})
			}
		}
	}
	return points
}
