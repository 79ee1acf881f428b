package editor

import (
	"sort"

	"github.com/gekko3d/modeler/rt/model"
)

type SelectionKind int

const (
	SelectionNone SelectionKind = iota
	// SelectionMesh is a mesh, optionally narrowed to one vertex or face.
	SelectionMesh
	// SelectionCustom is a non-empty set of custom vertex ids.
	SelectionCustom
)

func (k SelectionKind) String() string {
	switch k {
	case SelectionMesh:
		return "mesh"
	case SelectionCustom:
		return "custom"
	}
	return "none"
}

// Selection holds either a mesh selection or a custom vertex set, never
// both. Triangle selection is independent of either.
type Selection struct {
	kind SelectionKind

	mesh      int
	vertex    uint32
	hasVertex bool
	face      uint32
	hasFace   bool

	custom    map[uint32]struct{}
	triangles map[model.TriangleRef]struct{}
}

func NewSelection() *Selection {
	return &Selection{triangles: make(map[model.TriangleRef]struct{})}
}

func (s *Selection) Kind() SelectionKind { return s.kind }

func (s *Selection) IsEmpty() bool {
	return s.kind == SelectionNone && len(s.triangles) == 0
}

func (s *Selection) HasMesh() bool   { return s.kind == SelectionMesh }
func (s *Selection) HasVertex() bool { return s.kind == SelectionMesh && s.hasVertex }
func (s *Selection) HasFace() bool   { return s.kind == SelectionMesh && s.hasFace }

func (s *Selection) MeshID() (int, bool) {
	return s.mesh, s.kind == SelectionMesh
}

func (s *Selection) VertexIndex() (uint32, bool) {
	return s.vertex, s.HasVertex()
}

func (s *Selection) FaceIndex() (uint32, bool) {
	return s.face, s.HasFace()
}

func (s *Selection) HasCustomVertices() bool {
	return s.kind == SelectionCustom
}

func (s *Selection) HasCustomVertex(id uint32) bool {
	if s.kind != SelectionCustom {
		return false
	}
	_, ok := s.custom[id]
	return ok
}

// CustomVertexIDs returns the selected custom ids in ascending order.
func (s *Selection) CustomVertexIDs() []uint32 {
	if s.kind != SelectionCustom {
		return nil
	}
	return model.SortedVertexIDs(s.custom)
}

func (s *Selection) CustomCount() int {
	if s.kind != SelectionCustom {
		return 0
	}
	return len(s.custom)
}

func (s *Selection) resetVariant(kind SelectionKind) {
	s.kind = kind
	s.mesh = 0
	s.vertex, s.hasVertex = 0, false
	s.face, s.hasFace = 0, false
	s.custom = nil
}

func (s *Selection) SelectMesh(mesh int) {
	s.resetVariant(SelectionMesh)
	s.mesh = mesh
}

func (s *Selection) SelectVertex(mesh int, index uint32) {
	s.resetVariant(SelectionMesh)
	s.mesh = mesh
	s.vertex, s.hasVertex = index, true
}

func (s *Selection) SelectFace(mesh int, face uint32) {
	s.resetVariant(SelectionMesh)
	s.mesh = mesh
	s.face, s.hasFace = face, true
}

// AddCustomVertex adds id to the custom set, dropping any mesh selection.
func (s *Selection) AddCustomVertex(id uint32) {
	if id == 0 {
		return
	}
	if s.kind != SelectionCustom {
		s.resetVariant(SelectionCustom)
		s.custom = make(map[uint32]struct{})
	}
	s.custom[id] = struct{}{}
}

func (s *Selection) RemoveCustomVertex(id uint32) {
	if s.kind != SelectionCustom {
		return
	}
	delete(s.custom, id)
	if len(s.custom) == 0 {
		s.resetVariant(SelectionNone)
	}
}

// ToggleCustomVertex deselects an already selected id. Otherwise the id is
// added, after clearing the set unless additive. Reports whether id ends up
// selected.
func (s *Selection) ToggleCustomVertex(id uint32, additive bool) bool {
	if s.HasCustomVertex(id) {
		s.RemoveCustomVertex(id)
		return false
	}
	if !additive && s.kind == SelectionCustom {
		s.resetVariant(SelectionNone)
	}
	s.AddCustomVertex(id)
	return s.HasCustomVertex(id)
}

func (s *Selection) ClearCustomVertices() {
	if s.kind == SelectionCustom {
		s.resetVariant(SelectionNone)
	}
}

// Triangles

func (s *Selection) HasSelectedTriangles() bool { return len(s.triangles) > 0 }

func (s *Selection) HasTriangle(ref model.TriangleRef) bool {
	_, ok := s.triangles[ref]
	return ok
}

func (s *Selection) ToggleTriangle(ref model.TriangleRef, additive bool) bool {
	if s.HasTriangle(ref) {
		delete(s.triangles, ref)
		return false
	}
	if !additive {
		s.ClearTriangles()
	}
	s.triangles[ref] = struct{}{}
	return true
}

func (s *Selection) ClearTriangles() {
	for k := range s.triangles {
		delete(s.triangles, k)
	}
}

// Triangles returns the selected triangles, custom ones first, then by mesh
// and index.
func (s *Selection) Triangles() []model.TriangleRef {
	refs := make([]model.TriangleRef, 0, len(s.triangles))
	for r := range s.triangles {
		refs = append(refs, r)
	}
	sort.Slice(refs, func(i, j int) bool {
		if refs[i].Mesh != refs[j].Mesh {
			return refs[i].Mesh < refs[j].Mesh
		}
		return refs[i].Index < refs[j].Index
	})
	return refs
}

func (s *Selection) Clear() {
	s.resetVariant(SelectionNone)
	s.ClearTriangles()
}

// Prune drops ids that no longer exist in m. Reports whether anything changed.
func (s *Selection) Prune(m *model.Model) bool {
	changed := false
	for _, id := range s.CustomVertexIDs() {
		if !m.HasCustomVertex(id) {
			s.RemoveCustomVertex(id)
			changed = true
		}
	}
	if s.kind == SelectionMesh {
		mesh, ok := m.Mesh(s.mesh)
		switch {
		case !ok:
			s.resetVariant(SelectionNone)
			changed = true
		case s.hasVertex && int(s.vertex) >= len(mesh.Positions):
			s.hasVertex = false
			changed = true
		case s.hasFace && int(s.face) >= mesh.TriangleCount():
			s.hasFace = false
			changed = true
		}
	}
	for ref := range s.triangles {
		if _, _, _, ok := m.TrianglePositions(ref); !ok {
			delete(s.triangles, ref)
			changed = true
		}
	}
	return changed
}
