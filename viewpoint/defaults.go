package viewpoint

import "github.com/ansipixels/twincam/math3d"

func hotspot(x, y, z float64) *math3d.Vec3 {
	v := math3d.V3(x, y, z)
	return &v
}

// Default returns the built-in factory catalog.
func Default() *Catalog {
	return MustCatalog(
		Viewpoint{
			ID:          "overview",
			Name:        "Factory Overview",
			Description: "Bird's-eye view of the whole production hall",
			Icon:        "🏭",
			Position:    math3d.V3(18, 14, 18),
			Target:      math3d.V3(0, 0, -2),
			Category:    CategoryOverview,
		},
		Viewpoint{
			ID:          "kr300",
			Name:        "KUKA KR300 Cell",
			Description: "Heavy-payload welding robot",
			Icon:        "🦾",
			Position:    math3d.V3(-2.5, 4, 5.5),
			Target:      math3d.V3(-6, 1.5, 0),
			Hotspot:     hotspot(-6, 3.6, 0.9),
			Category:    CategoryEquipment,
		},
		Viewpoint{
			ID:          "kr120",
			Name:        "KUKA KR120 Pair",
			Description: "Twin handling robots at the press line",
			Icon:        "🤖",
			Position:    math3d.V3(6, 4, 5),
			Target:      math3d.V3(6, 1, -1),
			Hotspot:     hotspot(6, 2.6, -0.8),
			Category:    CategoryEquipment,
		},
		Viewpoint{
			ID:          "conveyor",
			Name:        "Main Conveyor",
			Description: "Transfer belt between the robot cells",
			Icon:        "🛤",
			Position:    math3d.V3(0, 3.5, 9),
			Target:      math3d.V3(0, 0.8, 2),
			Hotspot:     hotspot(0, 1.6, 2),
			Category:    CategoryInfrastructure,
		},
		Viewpoint{
			ID:          "storage",
			Name:        "Storage Racks",
			Description: "High-bay storage for finished parts",
			Icon:        "📦",
			Position:    math3d.V3(12, 6, -3),
			Target:      math3d.V3(12, 2, -12),
			Hotspot:     hotspot(12, 4.8, -12),
			Category:    CategoryInfrastructure,
		},
		Viewpoint{
			ID:          "control-room",
			Name:        "Control Room",
			Description: "Line supervision and SCADA terminals",
			Icon:        "🖥",
			Position:    math3d.V3(-6, 5, -4),
			Target:      math3d.V3(-12, 1.5, -12),
			Hotspot:     hotspot(-12, 3.6, -12),
			Category:    CategoryMonitoring,
		},
	)
}
