package scene

// Material is the appearance of a mesh. Highlighters install clones via
// pointer swap so the original can be restored by reference.
type Material struct {
	Name              string
	BaseColor         [4]float64 // RGBA in 0-1 range
	Emissive          [3]float64 // RGB in 0-1 range
	EmissiveIntensity float64
	Metallic          float64
	Roughness         float64
}

// DefaultMaterial returns a neutral grey material.
func DefaultMaterial() *Material {
	return &Material{
		Name:      "default",
		BaseColor: [4]float64{0.7, 0.7, 0.7, 1},
		Roughness: 1,
	}
}

// Clone returns an independent copy.
func (m *Material) Clone() *Material {
	c := *m
	return &c
}

// Shade returns the visible RGB (0-1) for a diffuse factor in [0, 1]:
// the lit base colour plus the emissive term.
func (m *Material) Shade(diffuse float64) [3]float64 {
	var out [3]float64
	for i := range 3 {
		v := m.BaseColor[i]*diffuse + m.Emissive[i]*m.EmissiveIntensity
		out[i] = min(1, max(0, v))
	}
	return out
}
