package scene

import (
	"encoding/binary"
	"fmt"
	"path/filepath"

	"github.com/ansipixels/twincam/math3d"
	"github.com/qmuntal/gltf"
)

// LoadGLB loads a glTF/GLB file into a scene graph, keeping node names and
// the parent chain so picks can be resolved to meaningful ancestors.
func LoadGLB(path string) (*Scene, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	return FromDocument(doc, filepath.Base(path))
}

// FromDocument converts a decoded glTF document.
func FromDocument(doc *gltf.Document, rootName string) (*Scene, error) {
	s := New(rootName)
	l := &loader{doc: doc, scene: s, materials: extractMaterials(doc)}

	if len(doc.Scenes) > 0 {
		sceneIdx := 0
		if doc.Scene != nil {
			sceneIdx = int(*doc.Scene)
		}
		gs := doc.Scenes[sceneIdx]
		parent := s.Root
		if gs.Name != "" {
			parent = s.AddGroup(nil, gs.Name)
		}
		for _, nodeIdx := range gs.Nodes {
			if err := l.processNode(int(nodeIdx), parent, math3d.Identity()); err != nil {
				return nil, err
			}
		}
		return s, nil
	}

	// No scenes defined, process all root nodes
	isChild := make(map[int]bool)
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			isChild[int(c)] = true
		}
	}
	for i := range doc.Nodes {
		if isChild[i] {
			continue
		}
		if err := l.processNode(i, s.Root, math3d.Identity()); err != nil {
			return nil, err
		}
	}
	return s, nil
}

type loader struct {
	doc       *gltf.Document
	scene     *Scene
	materials []*Material
}

// nodeTransform builds a node's local transform (TRS or explicit matrix).
func nodeTransform(node *gltf.Node) math3d.Mat4 {
	if node.Matrix != [16]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1} &&
		node.Matrix != [16]float64{} {
		return math3d.Mat4FromSlice(node.Matrix[:])
	}
	local := math3d.Identity()
	if node.Translation != [3]float64{0, 0, 0} {
		local = local.Mul(math3d.Translate(math3d.V3(node.Translation[0], node.Translation[1], node.Translation[2])))
	}
	if node.Rotation != [4]float64{0, 0, 0, 1} && node.Rotation != [4]float64{} {
		local = local.Mul(math3d.QuatToMat4(node.Rotation[0], node.Rotation[1], node.Rotation[2], node.Rotation[3]))
	}
	if node.Scale != [3]float64{1, 1, 1} && node.Scale != [3]float64{0, 0, 0} {
		local = local.Mul(math3d.Scale(math3d.V3(node.Scale[0], node.Scale[1], node.Scale[2])))
	}
	return local
}

// processNode recursively adds a node and its children, accumulating transforms.
func (l *loader) processNode(nodeIdx int, parent *Node, parentTransform math3d.Mat4) error {
	node := l.doc.Nodes[nodeIdx]
	world := parentTransform.Mul(nodeTransform(node))

	var self *Node
	if node.Mesh != nil {
		var err error
		self, err = l.addMesh(parent, node.Name, l.doc.Meshes[*node.Mesh], world)
		if err != nil {
			return fmt.Errorf("node %q: %w", node.Name, err)
		}
	}
	if self == nil {
		self = l.scene.AddGroup(parent, node.Name)
	}
	for _, childIdx := range node.Children {
		if err := l.processNode(int(childIdx), self, world); err != nil {
			return err
		}
	}
	return nil
}

// addMesh adds one renderable per triangle primitive. A single-primitive
// mesh becomes the node itself; several primitives hang under a group
// carrying the node name, like three.js does.
func (l *loader) addMesh(parent *Node, name string, m *gltf.Mesh, transform math3d.Mat4) (*Node, error) {
	type part struct {
		tris []Triangle
		mat  *Material
	}
	var parts []part
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			continue
		}
		tris, err := l.readTriangles(prim, transform)
		if err != nil {
			return nil, err
		}
		if len(tris) == 0 {
			continue
		}
		mat := DefaultMaterial()
		if prim.Material != nil && int(*prim.Material) < len(l.materials) {
			mat = l.materials[*prim.Material]
		}
		parts = append(parts, part{tris: tris, mat: mat})
	}
	switch len(parts) {
	case 0:
		return nil, nil
	case 1:
		return l.scene.AddMesh(parent, name, parts[0].tris, parts[0].mat), nil
	}
	group := l.scene.AddGroup(parent, name)
	for i, p := range parts {
		childName := ""
		if m.Name != "" {
			childName = fmt.Sprintf("%s_%d", m.Name, i)
		}
		l.scene.AddMesh(group, childName, p.tris, p.mat)
	}
	return group, nil
}

func (l *loader) readTriangles(prim *gltf.Primitive, transform math3d.Mat4) ([]Triangle, error) {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, nil
	}
	positions, err := readVec3Accessor(l.doc, int(posIdx))
	if err != nil {
		return nil, fmt.Errorf("read positions: %w", err)
	}
	for i := range positions {
		positions[i] = transform.MulVec3(positions[i])
	}

	var indices []int
	if prim.Indices != nil {
		indices, err = readIndices(l.doc, int(*prim.Indices))
		if err != nil {
			return nil, fmt.Errorf("read indices: %w", err)
		}
	} else {
		indices = make([]int, len(positions))
		for i := range indices {
			indices[i] = i
		}
	}

	tris := make([]Triangle, 0, len(indices)/3)
	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := indices[i], indices[i+1], indices[i+2]
		if a >= len(positions) || b >= len(positions) || c >= len(positions) {
			return nil, fmt.Errorf("index out of range at triangle %d", i/3)
		}
		tris = append(tris, Triangle{positions[a], positions[b], positions[c]})
	}
	return tris, nil
}

// extractMaterials converts glTF PBR materials. Each primitive shares the
// material pointer, so swapping it on one node never affects another.
func extractMaterials(doc *gltf.Document) []*Material {
	materials := make([]*Material, len(doc.Materials))
	for i, mat := range doc.Materials {
		m := DefaultMaterial()
		m.Name = mat.Name
		m.BaseColor = [4]float64{1, 1, 1, 1}
		if pbr := mat.PBRMetallicRoughness; pbr != nil {
			if pbr.BaseColorFactor != nil {
				m.BaseColor = [4]float64{
					float64(pbr.BaseColorFactor[0]),
					float64(pbr.BaseColorFactor[1]),
					float64(pbr.BaseColorFactor[2]),
					float64(pbr.BaseColorFactor[3]),
				}
			}
			if pbr.MetallicFactor != nil {
				m.Metallic = float64(*pbr.MetallicFactor)
			}
			if pbr.RoughnessFactor != nil {
				m.Roughness = float64(*pbr.RoughnessFactor)
			}
		}
		m.Emissive = [3]float64{float64(mat.EmissiveFactor[0]), float64(mat.EmissiveFactor[1]), float64(mat.EmissiveFactor[2])}
		if m.Emissive != [3]float64{} {
			m.EmissiveIntensity = 1
		}
		materials[i] = m
	}
	return materials
}

// accessorBytes returns the buffer slice an accessor reads from, its start
// offset and stride.
func accessorBytes(doc *gltf.Document, accessor *gltf.Accessor, elemSize int) ([]byte, int, int, error) {
	if accessor.BufferView == nil {
		return nil, 0, 0, fmt.Errorf("accessor has no buffer view")
	}
	bv := doc.BufferViews[*accessor.BufferView]
	buf := doc.Buffers[bv.Buffer]
	if buf.URI != "" && buf.Data == nil {
		return nil, 0, 0, fmt.Errorf("external buffers not supported yet")
	}
	if buf.Data == nil {
		return nil, 0, 0, fmt.Errorf("buffer has no data")
	}
	stride := int(bv.ByteStride)
	if stride == 0 {
		stride = elemSize
	}
	start := int(bv.ByteOffset) + int(accessor.ByteOffset)
	end := start + (int(accessor.Count)-1)*stride + elemSize
	if accessor.Count > 0 && end > len(buf.Data) {
		return nil, 0, 0, fmt.Errorf("accessor overruns buffer (%d > %d)", end, len(buf.Data))
	}
	return buf.Data, start, stride, nil
}

// readVec3Accessor reads float VEC3 data from a glTF accessor.
func readVec3Accessor(doc *gltf.Document, accessorIdx int) ([]math3d.Vec3, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec3 || accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("expected float VEC3, got %v/%v", accessor.Type, accessor.ComponentType)
	}
	data, start, stride, err := accessorBytes(doc, accessor, 12)
	if err != nil {
		return nil, err
	}
	out := make([]math3d.Vec3, accessor.Count)
	for i := range out {
		off := start + i*stride
		out[i] = math3d.V3(
			float64(readFloat32LE(data[off:])),
			float64(readFloat32LE(data[off+4:])),
			float64(readFloat32LE(data[off+8:])),
		)
	}
	return out, nil
}

// readIndices reads scalar index data of any unsigned component type.
func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("expected SCALAR indices, got %v", accessor.Type)
	}
	var size int
	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		size = 1
	case gltf.ComponentUshort:
		size = 2
	case gltf.ComponentUint:
		size = 4
	default:
		return nil, fmt.Errorf("unexpected index type: %v", accessor.ComponentType)
	}
	data, start, stride, err := accessorBytes(doc, accessor, size)
	if err != nil {
		return nil, err
	}
	out := make([]int, accessor.Count)
	for i := range out {
		off := start + i*stride
		switch size {
		case 1:
			out[i] = int(data[off])
		case 2:
			out[i] = int(binary.LittleEndian.Uint16(data[off:]))
		default:
			out[i] = int(binary.LittleEndian.Uint32(data[off:]))
		}
	}
	return out, nil
}
