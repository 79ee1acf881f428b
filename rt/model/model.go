package model

import (
	"errors"
	"fmt"
	"slices"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

var (
	ErrNoSuchMesh   = errors.New("no such mesh")
	ErrNoSuchVertex = errors.New("no such vertex")
	ErrNoSuchFace   = errors.New("no such face")
)

// CustomMesh is the TriangleRef.Mesh value of editor-authored triangles.
const CustomMesh = -1

// Mesh is imported geometry addressed by vertex index.
type Mesh struct {
	Name      string
	Positions []mgl32.Vec3
	Indices   []uint32
}

func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

func (m *Mesh) Triangle(i int) (a, b, c mgl32.Vec3, ok bool) {
	if i < 0 || i >= m.TriangleCount() {
		return a, b, c, false
	}
	ia, ib, ic := m.Indices[i*3], m.Indices[i*3+1], m.Indices[i*3+2]
	n := uint32(len(m.Positions))
	if ia >= n || ib >= n || ic >= n {
		return a, b, c, false
	}
	return m.Positions[ia], m.Positions[ib], m.Positions[ic], true
}

func (m *Mesh) Centroid() (mgl32.Vec3, bool) {
	if len(m.Positions) == 0 {
		return mgl32.Vec3{}, false
	}
	var sum mgl32.Vec3
	for _, p := range m.Positions {
		sum = sum.Add(p)
	}
	return sum.Mul(1 / float32(len(m.Positions))), true
}

// Vertex is an editor-authored vertex. ID 0 is never assigned.
type Vertex struct {
	ID       uint32
	Position mgl32.Vec3
}

// Triangle references three custom vertices; their order is the winding.
type Triangle struct {
	ID        uint32
	VertexIDs [3]uint32
}

// TriangleRef names either a custom triangle (Mesh == CustomMesh, Index is
// the triangle id) or a mesh triangle (Index is the triangle number).
type TriangleRef struct {
	Mesh  int
	Index uint32
}

func CustomTriangleRef(id uint32) TriangleRef     { return TriangleRef{Mesh: CustomMesh, Index: id} }
func MeshTriangleRef(mesh int, tri uint32) TriangleRef { return TriangleRef{Mesh: mesh, Index: tri} }
func (r TriangleRef) IsCustom() bool                 { return r.Mesh == CustomMesh }

// Model owns all editable geometry of one document.
type Model struct {
	meshes    []*Mesh
	vertices  []Vertex
	triangles []Triangle

	nextVertexID   uint32
	nextTriangleID uint32

	documentID uuid.UUID
	authored   bool
	dirty      bool
}

func New() *Model {
	return &Model{
		nextVertexID:   1,
		nextTriangleID: 1,
		documentID:     uuid.New(),
	}
}

func (m *Model) DocumentID() uuid.UUID { return m.documentID }

// EditorAuthored reports whether the model came from a file this editor wrote.
func (m *Model) EditorAuthored() bool { return m.authored }

func (m *Model) Dirty() bool   { return m.dirty }
func (m *Model) MarkClean()    { m.dirty = false }
func (m *Model) IsEmpty() bool { return len(m.meshes) == 0 && len(m.vertices) == 0 }

// Clear drops all geometry and starts a new document. Id counters keep
// running so ids are never handed out twice in a session.
func (m *Model) Clear() {
	m.meshes = nil
	m.vertices = nil
	m.triangles = nil
	m.documentID = uuid.New()
	m.authored = false
	m.dirty = false
}

// Meshes

func (m *Model) MeshCount() int { return len(m.meshes) }

func (m *Model) Mesh(id int) (*Mesh, bool) {
	if id < 0 || id >= len(m.meshes) {
		return nil, false
	}
	return m.meshes[id], true
}

func (m *Model) AddMesh(mesh *Mesh) int {
	m.meshes = append(m.meshes, mesh)
	m.dirty = true
	return len(m.meshes) - 1
}

func (m *Model) MeshVertex(meshID int, index uint32) (mgl32.Vec3, bool) {
	mesh, ok := m.Mesh(meshID)
	if !ok || int(index) >= len(mesh.Positions) {
		return mgl32.Vec3{}, false
	}
	return mesh.Positions[index], true
}

func transformPoint(mat mgl32.Mat4, p mgl32.Vec3) mgl32.Vec3 {
	v := mat.Mul4x1(p.Vec4(1))
	if v.W() != 0 && v.W() != 1 {
		return v.Vec3().Mul(1 / v.W())
	}
	return v.Vec3()
}

func (m *Model) TransformVertices(meshID int, indices []uint32, mat mgl32.Mat4) error {
	mesh, ok := m.Mesh(meshID)
	if !ok {
		return fmt.Errorf("transform vertices of mesh %d: %w", meshID, ErrNoSuchMesh)
	}
	for _, idx := range indices {
		if int(idx) >= len(mesh.Positions) {
			return fmt.Errorf("transform vertex %d of mesh %d: %w", idx, meshID, ErrNoSuchVertex)
		}
	}
	for _, idx := range indices {
		mesh.Positions[idx] = transformPoint(mat, mesh.Positions[idx])
	}
	if len(indices) > 0 {
		m.dirty = true
	}
	return nil
}

// TransformFace moves the distinct corners of one mesh triangle.
func (m *Model) TransformFace(meshID int, face uint32, mat mgl32.Mat4) error {
	mesh, ok := m.Mesh(meshID)
	if !ok {
		return fmt.Errorf("transform face of mesh %d: %w", meshID, ErrNoSuchMesh)
	}
	if int(face) >= mesh.TriangleCount() {
		return fmt.Errorf("transform face %d of mesh %d: %w", face, meshID, ErrNoSuchFace)
	}
	corners := mesh.Indices[face*3 : face*3+3]
	indices := make([]uint32, 0, 3)
	for _, idx := range corners {
		if !slices.Contains(indices, idx) {
			indices = append(indices, idx)
		}
	}
	return m.TransformVertices(meshID, indices, mat)
}

func (m *Model) TransformMesh(meshID int, mat mgl32.Mat4) error {
	mesh, ok := m.Mesh(meshID)
	if !ok {
		return fmt.Errorf("transform mesh %d: %w", meshID, ErrNoSuchMesh)
	}
	for i, p := range mesh.Positions {
		mesh.Positions[i] = transformPoint(mat, p)
	}
	m.dirty = true
	return nil
}

// TransformCustomVertices moves the listed custom vertices. Unknown ids are
// skipped; the count of moved vertices is returned.
func (m *Model) TransformCustomVertices(ids []uint32, mat mgl32.Mat4) int {
	moved := 0
	for _, id := range ids {
		i := m.vertexIndex(id)
		if i < 0 {
			continue
		}
		m.vertices[i].Position = transformPoint(mat, m.vertices[i].Position)
		moved++
	}
	if moved > 0 {
		m.dirty = true
	}
	return moved
}

// PivotTransform conjugates op so it acts around center.
func PivotTransform(center mgl32.Vec3, op mgl32.Mat4) mgl32.Mat4 {
	return mgl32.Translate3D(center.X(), center.Y(), center.Z()).
		Mul4(op).
		Mul4(mgl32.Translate3D(-center.X(), -center.Y(), -center.Z()))
}

// Custom vertices

func (m *Model) vertexIndex(id uint32) int {
	if id == 0 {
		return -1
	}
	for i := range m.vertices {
		if m.vertices[i].ID == id {
			return i
		}
	}
	return -1
}

func (m *Model) AddCustomVertex(pos mgl32.Vec3) uint32 {
	id := m.nextVertexID
	m.nextVertexID++
	m.vertices = append(m.vertices, Vertex{ID: id, Position: pos})
	m.dirty = true
	return id
}

// RemoveCustomVertex also removes every triangle that uses the vertex.
func (m *Model) RemoveCustomVertex(id uint32) bool {
	i := m.vertexIndex(id)
	if i < 0 {
		return false
	}
	m.vertices = append(m.vertices[:i], m.vertices[i+1:]...)

	kept := m.triangles[:0]
	for _, tri := range m.triangles {
		if tri.VertexIDs[0] == id || tri.VertexIDs[1] == id || tri.VertexIDs[2] == id {
			continue
		}
		kept = append(kept, tri)
	}
	m.triangles = kept
	m.dirty = true
	return true
}

func (m *Model) HasCustomVertex(id uint32) bool {
	return m.vertexIndex(id) >= 0
}

func (m *Model) CustomVertex(id uint32) (mgl32.Vec3, bool) {
	i := m.vertexIndex(id)
	if i < 0 {
		return mgl32.Vec3{}, false
	}
	return m.vertices[i].Position, true
}

// CustomVertices returns the vertices in creation order. The slice is owned
// by the model.
func (m *Model) CustomVertices() []Vertex { return m.vertices }

// Centroid is the mean position of the listed custom vertices that exist.
func (m *Model) Centroid(ids []uint32) (mgl32.Vec3, bool) {
	var sum mgl32.Vec3
	n := 0
	for _, id := range ids {
		if p, ok := m.CustomVertex(id); ok {
			sum = sum.Add(p)
			n++
		}
	}
	if n == 0 {
		return mgl32.Vec3{}, false
	}
	return sum.Mul(1 / float32(n)), true
}

// Custom triangles

// AddCustomTriangle returns 0 unless a, b and c are distinct existing vertices.
func (m *Model) AddCustomTriangle(a, b, c uint32) uint32 {
	if a == 0 || b == 0 || c == 0 || a == b || b == c || a == c {
		return 0
	}
	if !m.HasCustomVertex(a) || !m.HasCustomVertex(b) || !m.HasCustomVertex(c) {
		return 0
	}
	id := m.nextTriangleID
	m.nextTriangleID++
	m.triangles = append(m.triangles, Triangle{ID: id, VertexIDs: [3]uint32{a, b, c}})
	m.dirty = true
	return id
}

func (m *Model) triangleIndex(id uint32) int {
	for i := range m.triangles {
		if m.triangles[i].ID == id {
			return i
		}
	}
	return -1
}

func (m *Model) RemoveCustomTriangle(id uint32) bool {
	i := m.triangleIndex(id)
	if i < 0 {
		return false
	}
	m.triangles = append(m.triangles[:i], m.triangles[i+1:]...)
	m.dirty = true
	return true
}

func (m *Model) CustomTriangle(id uint32) (Triangle, bool) {
	i := m.triangleIndex(id)
	if i < 0 {
		return Triangle{}, false
	}
	return m.triangles[i], true
}

func (m *Model) CustomTriangles() []Triangle { return m.triangles }

// CustomTrianglePositions resolves the corners of a custom triangle.
func (m *Model) CustomTrianglePositions(id uint32) (a, b, c mgl32.Vec3, ok bool) {
	tri, found := m.CustomTriangle(id)
	if !found {
		return a, b, c, false
	}
	var okA, okB, okC bool
	a, okA = m.CustomVertex(tri.VertexIDs[0])
	b, okB = m.CustomVertex(tri.VertexIDs[1])
	c, okC = m.CustomVertex(tri.VertexIDs[2])
	return a, b, c, okA && okB && okC
}

// TrianglePositions resolves the corners of a custom or mesh triangle.
func (m *Model) TrianglePositions(ref TriangleRef) (a, b, c mgl32.Vec3, ok bool) {
	if ref.IsCustom() {
		return m.CustomTrianglePositions(ref.Index)
	}
	mesh, found := m.Mesh(ref.Mesh)
	if !found {
		return a, b, c, false
	}
	return mesh.Triangle(int(ref.Index))
}

// ReverseWinding swaps the second and third corner of the referenced triangle.
func (m *Model) ReverseWinding(ref TriangleRef) bool {
	if ref.IsCustom() {
		i := m.triangleIndex(ref.Index)
		if i < 0 {
			return false
		}
		v := &m.triangles[i].VertexIDs
		v[1], v[2] = v[2], v[1]
		m.dirty = true
		return true
	}
	mesh, ok := m.Mesh(ref.Mesh)
	if !ok || int(ref.Index) >= mesh.TriangleCount() {
		return false
	}
	base := ref.Index * 3
	mesh.Indices[base+1], mesh.Indices[base+2] = mesh.Indices[base+2], mesh.Indices[base+1]
	m.dirty = true
	return true
}

// ImportMeshAsCustom copies a mesh's vertices and triangles into the custom
// store so the free-form tools can edit them. Returns the new vertex ids.
func (m *Model) ImportMeshAsCustom(meshID int) ([]uint32, error) {
	mesh, ok := m.Mesh(meshID)
	if !ok {
		return nil, fmt.Errorf("import mesh %d: %w", meshID, ErrNoSuchMesh)
	}
	ids := make([]uint32, len(mesh.Positions))
	for i, p := range mesh.Positions {
		ids[i] = m.AddCustomVertex(p)
	}
	for t := 0; t < mesh.TriangleCount(); t++ {
		ia, ib, ic := mesh.Indices[t*3], mesh.Indices[t*3+1], mesh.Indices[t*3+2]
		if int(ia) >= len(ids) || int(ib) >= len(ids) || int(ic) >= len(ids) {
			continue
		}
		m.AddCustomTriangle(ids[ia], ids[ib], ids[ic])
	}
	return ids, nil
}

// restoreCustom installs persisted vertices and triangles, keeping their ids.
func (m *Model) restoreCustom(vertices []Vertex, triangles []Triangle) {
	m.vertices = append(m.vertices[:0], vertices...)
	m.triangles = append(m.triangles[:0], triangles...)
	for _, v := range vertices {
		if v.ID >= m.nextVertexID {
			m.nextVertexID = v.ID + 1
		}
	}
	for _, t := range triangles {
		if t.ID >= m.nextTriangleID {
			m.nextTriangleID = t.ID + 1
		}
	}
}

// SortedVertexIDs is a helper for deterministic iteration in callers that
// hold id sets.
func SortedVertexIDs(set map[uint32]struct{}) []uint32 {
	ids := make([]uint32, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
