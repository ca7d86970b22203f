package scene

import "github.com/ansipixels/twincam/math3d"

// Demo builds a small factory floor out of boxes. Node names follow the
// exporter conventions of the real factory model so the default alert
// table and viewpoint catalog resolve against it.
func Demo() *Scene {
	s := New("Scene")
	root := s.AddGroup(nil, "RootNode")

	steel := &Material{Name: "steel", BaseColor: [4]float64{0.55, 0.58, 0.62, 1}, Metallic: 0.8, Roughness: 0.4}
	kukaOrange := &Material{Name: "kuka-orange", BaseColor: [4]float64{0.95, 0.45, 0.05, 1}, Roughness: 0.6}
	belt := &Material{Name: "belt", BaseColor: [4]float64{0.15, 0.15, 0.17, 1}, Roughness: 0.9}
	rack := &Material{Name: "rack", BaseColor: [4]float64{0.2, 0.35, 0.75, 1}, Roughness: 0.7}
	glass := &Material{Name: "glass", BaseColor: [4]float64{0.6, 0.8, 0.85, 1}, Roughness: 0.1}

	box := func(parent *Node, name string, center, size math3d.Vec3, mat *Material) {
		// Materials are shared between boxes the way glTF primitives share
		// them; highlighting swaps pointers per node so sharing is safe.
		s.AddMesh(parent, name, Box(center, size), mat)
	}

	kr300 := s.AddGroup(root, "KUKA_KR300")
	box(kr300, "KR300_Base", math3d.V3(-6, 0.4, 0), math3d.V3(1.6, 0.8, 1.6), steel)
	box(kr300, "KR300_Arm", math3d.V3(-6, 1.8, 0.3), math3d.V3(0.6, 2.0, 0.6), kukaOrange)
	box(kr300, "KR300_Wrist", math3d.V3(-6, 2.9, 0.9), math3d.V3(0.4, 0.4, 0.8), kukaOrange)

	kr120l := s.AddGroup(root, "KUKA_KR120_Left")
	box(kr120l, "KR120_L_Base", math3d.V3(4.5, 0.3, -1), math3d.V3(1.2, 0.6, 1.2), steel)
	box(kr120l, "KR120_L_Arm", math3d.V3(4.5, 1.3, -0.8), math3d.V3(0.4, 1.4, 0.4), kukaOrange)

	kr120r := s.AddGroup(root, "KUKA_KR120_Right")
	box(kr120r, "KR120_R_Base", math3d.V3(7.5, 0.3, -1), math3d.V3(1.2, 0.6, 1.2), steel)
	box(kr120r, "KR120_R_Arm", math3d.V3(7.5, 1.3, -0.8), math3d.V3(0.4, 1.4, 0.4), kukaOrange)

	conveyor := s.AddGroup(root, "Conveyor_Main")
	box(conveyor, "Conveyor_Frame", math3d.V3(0, 0.35, 2), math3d.V3(10, 0.7, 1.4), steel)
	box(conveyor, "Conveyor_Belt", math3d.V3(0, 0.75, 2), math3d.V3(10, 0.1, 1.2), belt)

	storage := s.AddGroup(root, "Storage")
	box(storage, "Rack_A", math3d.V3(10.5, 2, -12), math3d.V3(2, 4, 1), rack)
	box(storage, "Rack_B", math3d.V3(13.5, 2, -12), math3d.V3(2, 4, 1), rack)

	control := s.AddGroup(root, "Control_Room")
	box(control, "Control_Walls", math3d.V3(-12, 1.5, -12), math3d.V3(5, 3, 4), glass)
	box(control, "Control_Desk", math3d.V3(-12, 0.5, -11), math3d.V3(2.5, 1, 1), steel)

	return s
}
