package scene

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/ansipixels/twincam/math3d"
)

// LoadSTL loads an ASCII or binary STL file as a one-mesh scene. STL has
// no hierarchy, so the mesh takes the solid name (or the file name).
func LoadSTL(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read STL file: %w", err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return ReadSTL(data, name)
}

// ReadSTL parses STL data of either flavour.
func ReadSTL(data []byte, name string) (*Scene, error) {
	var (
		tris []Triangle
		err  error
	)
	if isBinarySTL(data) {
		tris, err = readBinarySTL(data)
	} else {
		var solid string
		tris, solid, err = readASCIISTL(data)
		if solid != "" {
			name = solid
		}
	}
	if err != nil {
		return nil, err
	}
	s := New(name)
	s.AddMesh(nil, name, tris, nil)
	return s, nil
}

// isBinarySTL reports binary data: an 84-byte header whose triangle count
// matches the size. A binary header may itself start with "solid".
func isBinarySTL(data []byte) bool {
	if len(data) < 84 {
		return false
	}
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if !bytes.HasPrefix(trimmed, []byte("solid")) {
		return true
	}
	triCount := binary.LittleEndian.Uint32(data[80:84])
	return uint64(len(data)) == 84+uint64(triCount)*50
}

func readBinarySTL(data []byte) ([]Triangle, error) {
	triCount := binary.LittleEndian.Uint32(data[80:84])
	expected := 84 + uint64(triCount)*50
	if uint64(len(data)) < expected {
		return nil, fmt.Errorf("binary STL truncated: expected %d bytes, got %d", expected, len(data))
	}
	tris := make([]Triangle, 0, triCount)
	offset := 84
	for range triCount {
		offset += 12 // facet normal, recomputed from the corners when needed
		var t Triangle
		for v := range 3 {
			t[v] = math3d.V3(
				float64(readFloat32LE(data[offset:])),
				float64(readFloat32LE(data[offset+4:])),
				float64(readFloat32LE(data[offset+8:])),
			)
			offset += 12
		}
		offset += 2 // attribute byte count
		tris = append(tris, t)
	}
	return tris, nil
}

func readFloat32LE(data []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(data))
}

func readASCIISTL(data []byte) ([]Triangle, string, error) {
	var (
		tris    []Triangle
		solid   string
		corners []math3d.Vec3
		inLoop  bool
	)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch strings.ToLower(fields[0]) {
		case "solid":
			if len(fields) > 1 {
				solid = fields[1]
			}
		case "outer":
			inLoop = true
			corners = corners[:0]
		case "vertex":
			if !inLoop {
				return nil, "", fmt.Errorf("line %d: vertex outside facet/loop", lineNum)
			}
			if len(fields) < 4 {
				return nil, "", fmt.Errorf("line %d: vertex needs x y z", lineNum)
			}
			p, err := parseXYZ(fields[1:4])
			if err != nil {
				return nil, "", fmt.Errorf("line %d: %w", lineNum, err)
			}
			corners = append(corners, p)
		case "endloop":
			inLoop = false
			if len(corners) >= 3 {
				tris = append(tris, Triangle{corners[0], corners[1], corners[2]})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, "", fmt.Errorf("error reading ASCII STL: %w", err)
	}
	return tris, solid, nil
}
