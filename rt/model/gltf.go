package model

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

const (
	// Generator is written into the asset block of saved files.
	Generator = "gekko modeler"
	// CustomMeshName is the mesh that holds editor-authored geometry.
	CustomMeshName = "editor_custom"
)

type assetExtras struct {
	DocumentID string `json:"documentId"`
}

type customExtras struct {
	VertexIDs   []uint32 `json:"vertexIds"`
	TriangleIDs []uint32 `json:"triangleIds,omitempty"`
}

// decodeExtras accepts whatever the glTF decoder produced for an extras field.
func decodeExtras(raw any, into any) bool {
	if raw == nil {
		return false
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return false
	}
	return json.Unmarshal(b, into) == nil
}

func toArray(v []mgl32.Vec3) [][3]float32 {
	out := make([][3]float32, len(v))
	for i, p := range v {
		out[i] = [3]float32{p[0], p[1], p[2]}
	}
	return out
}

func fromArray(v [][3]float32) []mgl32.Vec3 {
	out := make([]mgl32.Vec3, len(v))
	for i, p := range v {
		out[i] = mgl32.Vec3{p[0], p[1], p[2]}
	}
	return out
}

// Save writes m as glTF. A ".glb" extension selects the binary container,
// anything else is written as JSON with an embedded buffer.
func Save(m *Model, path string) error {
	if path == "" {
		return fmt.Errorf("save model: empty path")
	}
	doc := gltf.NewDocument()
	doc.Asset.Generator = Generator
	doc.Asset.Extras = assetExtras{DocumentID: m.documentID.String()}

	for _, mesh := range m.meshes {
		if len(mesh.Positions) == 0 {
			continue
		}
		prim := &gltf.Primitive{
			Attributes: map[string]int{
				gltf.POSITION: modeler.WritePosition(doc, toArray(mesh.Positions)),
			},
		}
		if len(mesh.Indices) > 0 {
			prim.Indices = gltf.Index(modeler.WriteIndices(doc, mesh.Indices))
		}
		appendMesh(doc, &gltf.Mesh{Name: mesh.Name, Primitives: []*gltf.Primitive{prim}})
	}

	if len(m.vertices) > 0 {
		appendMesh(doc, m.customMesh(doc))
	}

	if len(doc.Meshes) == 0 {
		doc.Buffers = nil
	}

	if strings.EqualFold(filepath.Ext(path), ".glb") {
		if err := gltf.SaveBinary(doc, path); err != nil {
			return fmt.Errorf("save model %s: %w", path, err)
		}
		return nil
	}
	for _, b := range doc.Buffers {
		b.EmbeddedResource()
	}
	if err := gltf.Save(doc, path); err != nil {
		return fmt.Errorf("save model %s: %w", path, err)
	}
	return nil
}

func (m *Model) customMesh(doc *gltf.Document) *gltf.Mesh {
	positions := make([][3]float32, len(m.vertices))
	slot := make(map[uint32]uint32, len(m.vertices))
	extras := customExtras{VertexIDs: make([]uint32, len(m.vertices))}
	for i, v := range m.vertices {
		positions[i] = [3]float32{v.Position[0], v.Position[1], v.Position[2]}
		slot[v.ID] = uint32(i)
		extras.VertexIDs[i] = v.ID
	}

	prim := &gltf.Primitive{
		Attributes: map[string]int{gltf.POSITION: modeler.WritePosition(doc, positions)},
	}
	if len(m.triangles) > 0 {
		indices := make([]uint32, 0, len(m.triangles)*3)
		for _, t := range m.triangles {
			indices = append(indices, slot[t.VertexIDs[0]], slot[t.VertexIDs[1]], slot[t.VertexIDs[2]])
			extras.TriangleIDs = append(extras.TriangleIDs, t.ID)
		}
		prim.Indices = gltf.Index(modeler.WriteIndices(doc, indices))
	} else {
		prim.Mode = gltf.PrimitivePoints
	}
	return &gltf.Mesh{Name: CustomMeshName, Extras: extras, Primitives: []*gltf.Primitive{prim}}
}

func appendMesh(doc *gltf.Document, mesh *gltf.Mesh) {
	if len(doc.Scenes) == 0 {
		doc.Scenes = []*gltf.Scene{{Name: "Root Scene"}}
		doc.Scene = gltf.Index(0)
	}
	doc.Meshes = append(doc.Meshes, mesh)
	doc.Nodes = append(doc.Nodes, &gltf.Node{Name: mesh.Name, Mesh: gltf.Index(len(doc.Meshes) - 1)})
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, len(doc.Nodes)-1)
}

// Load reads a glTF or GLB file into a new Model. Files written by another
// tool have their first mesh imported as custom geometry so the vertex tools
// can edit it.
func Load(path string) (*Model, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open model %s: %w", path, err)
	}

	m := New()
	var ax assetExtras
	if decodeExtras(doc.Asset.Extras, &ax) && ax.DocumentID != "" {
		if id, err := uuid.Parse(ax.DocumentID); err == nil {
			m.documentID = id
			m.authored = true
		}
	}

	customFound := false
	for i, gm := range doc.Meshes {
		if gm.Name == CustomMeshName {
			if err := m.loadCustom(doc, gm); err != nil {
				return nil, fmt.Errorf("load %s mesh %d: %w", path, i, err)
			}
			customFound = true
			continue
		}
		mesh, err := readMesh(doc, gm)
		if err != nil {
			return nil, fmt.Errorf("load %s mesh %d: %w", path, i, err)
		}
		if mesh != nil {
			m.meshes = append(m.meshes, mesh)
		}
	}

	if !customFound && !m.authored && len(m.meshes) > 0 {
		if _, err := m.ImportMeshAsCustom(0); err != nil {
			return nil, err
		}
	}
	m.dirty = false
	return m, nil
}

// readMesh merges the triangle primitives of a glTF mesh into one Mesh.
func readMesh(doc *gltf.Document, gm *gltf.Mesh) (*Mesh, error) {
	out := &Mesh{Name: gm.Name}
	for _, p := range gm.Primitives {
		if p.Mode != gltf.PrimitiveTriangles {
			continue
		}
		posIdx, ok := p.Attributes[gltf.POSITION]
		if !ok || posIdx >= len(doc.Accessors) {
			continue
		}
		pos, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
		if err != nil {
			return nil, fmt.Errorf("read positions: %w", err)
		}
		base := uint32(len(out.Positions))
		out.Positions = append(out.Positions, fromArray(pos)...)

		if p.Indices != nil && *p.Indices < len(doc.Accessors) {
			idx, err := modeler.ReadIndices(doc, doc.Accessors[*p.Indices], nil)
			if err != nil {
				return nil, fmt.Errorf("read indices: %w", err)
			}
			for _, i := range idx {
				out.Indices = append(out.Indices, base+i)
			}
		} else {
			for i := range pos {
				out.Indices = append(out.Indices, base+uint32(i))
			}
		}
	}
	if len(out.Positions) == 0 {
		return nil, nil
	}
	return out, nil
}

func (m *Model) loadCustom(doc *gltf.Document, gm *gltf.Mesh) error {
	if len(gm.Primitives) == 0 {
		return nil
	}
	p := gm.Primitives[0]
	posIdx, ok := p.Attributes[gltf.POSITION]
	if !ok || posIdx >= len(doc.Accessors) {
		return fmt.Errorf("custom mesh has no positions")
	}
	pos, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return fmt.Errorf("read custom positions: %w", err)
	}

	var ex customExtras
	decodeExtras(gm.Extras, &ex)
	if !usableIDs(ex.VertexIDs, len(pos)) {
		ex.VertexIDs = sequentialIDs(len(pos))
	}
	vertices := make([]Vertex, len(pos))
	for i, q := range pos {
		vertices[i] = Vertex{ID: ex.VertexIDs[i], Position: mgl32.Vec3{q[0], q[1], q[2]}}
	}

	var triangles []Triangle
	if p.Indices != nil && *p.Indices < len(doc.Accessors) {
		idx, err := modeler.ReadIndices(doc, doc.Accessors[*p.Indices], nil)
		if err != nil {
			return fmt.Errorf("read custom indices: %w", err)
		}
		count := len(idx) / 3
		if !usableIDs(ex.TriangleIDs, count) {
			ex.TriangleIDs = sequentialIDs(count)
		}
		for t := 0; t < count; t++ {
			a, b, c := idx[t*3], idx[t*3+1], idx[t*3+2]
			if int(a) >= len(vertices) || int(b) >= len(vertices) || int(c) >= len(vertices) {
				return fmt.Errorf("custom triangle %d references missing vertex", t)
			}
			triangles = append(triangles, Triangle{
				ID:        ex.TriangleIDs[t],
				VertexIDs: [3]uint32{vertices[a].ID, vertices[b].ID, vertices[c].ID},
			})
		}
	}
	m.restoreCustom(vertices, triangles)
	return nil
}

// usableIDs reports whether persisted ids can be kept: one per element,
// nonzero and unique. Anything else is renumbered.
func usableIDs(ids []uint32, n int) bool {
	if len(ids) != n {
		return false
	}
	seen := make(map[uint32]struct{}, n)
	for _, id := range ids {
		if id == 0 {
			return false
		}
		if _, dup := seen[id]; dup {
			return false
		}
		seen[id] = struct{}{}
	}
	return true
}

func sequentialIDs(n int) []uint32 {
	ids := make([]uint32, n)
	for i := range ids {
		ids[i] = uint32(i + 1)
	}
	return ids
}

// FileStore loads and saves models as glTF files on disk.
type FileStore struct{}

func (FileStore) Load(path string) (*Model, error) { return Load(path) }
func (FileStore) Save(m *Model, path string) error { return Save(m, path) }
