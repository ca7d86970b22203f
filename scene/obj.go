package scene

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ansipixels/twincam/math3d"
)

// LoadOBJ loads a Wavefront OBJ file. Each "o" statement opens a group
// under the root and each "g" statement a mesh inside the current group,
// so exported factory layouts keep their equipment names.
func LoadOBJ(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open OBJ file: %w", err)
	}
	defer f.Close()
	return ReadOBJ(f, filepath.Base(path))
}

// objBuilder accumulates the faces of the mesh being read.
type objBuilder struct {
	scene *Scene
	group *Node
	name  string
	tris  []Triangle
}

func (b *objBuilder) flush() {
	if len(b.tris) > 0 {
		b.scene.AddMesh(b.group, b.name, b.tris, nil)
	}
	b.tris = nil
}

// ReadOBJ parses OBJ data. Only positions and faces matter here; texture
// coordinates, normals and materials are skipped.
func ReadOBJ(r io.Reader, rootName string) (*Scene, error) {
	s := New(rootName)
	b := &objBuilder{scene: s, group: s.Root}
	var positions []math3d.Vec3

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: invalid vertex (need x y z)", lineNum)
			}
			p, err := parseXYZ(fields[1:4])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNum, err)
			}
			positions = append(positions, p)

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face needs at least 3 vertices", lineNum)
			}
			corners := make([]math3d.Vec3, 0, len(fields)-1)
			for _, fv := range fields[1:] {
				idx, err := faceIndex(fv, len(positions))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNum, err)
				}
				corners = append(corners, positions[idx])
			}
			// Fan triangulation; faces are assumed convex.
			for i := 1; i < len(corners)-1; i++ {
				b.tris = append(b.tris, Triangle{corners[0], corners[i], corners[i+1]})
			}

		case "o":
			b.flush()
			b.group = s.AddGroup(nil, objName(fields))
			b.name = ""

		case "g":
			b.flush()
			b.name = objName(fields)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading OBJ: %w", err)
	}
	b.flush()
	return s, nil
}

func objName(fields []string) string {
	if len(fields) < 2 {
		return ""
	}
	return strings.Join(fields[1:], " ")
}

func parseXYZ(fields []string) (math3d.Vec3, error) {
	var c [3]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return math3d.Vec3{}, fmt.Errorf("invalid coordinate %q: %w", f, err)
		}
		c[i] = v
	}
	return math3d.V3(c[0], c[1], c[2]), nil
}

// faceIndex resolves the position part of v, v/vt, v/vt/vn or v//vn to a
// 0-based index. Negative indices count back from the last vertex.
func faceIndex(s string, count int) (int, error) {
	pos, _, _ := strings.Cut(s, "/")
	idx, err := strconv.Atoi(pos)
	if err != nil {
		return 0, fmt.Errorf("invalid vertex index: %s", pos)
	}
	switch {
	case idx < 0:
		idx = count + idx
	case idx > 0:
		idx--
	default:
		return 0, fmt.Errorf("vertex index 0 is invalid")
	}
	if idx < 0 || idx >= count {
		return 0, fmt.Errorf("position index %s out of range", pos)
	}
	return idx, nil
}
