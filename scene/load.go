package scene

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Load picks a loader by file extension.
func Load(path string) (*Scene, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".glb", ".gltf":
		return LoadGLB(path)
	case ".obj":
		return LoadOBJ(path)
	case ".stl":
		return LoadSTL(path)
	default:
		return nil, fmt.Errorf("unsupported scene format %q (use .glb, .gltf, .obj or .stl)", ext)
	}
}
