package wfobj

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writeTemp %s: %v", name, err)
	}
	return path
}

func expectInt(t *testing.T, label string, want, got int) {
	t.Helper()
	if want != got {
		t.Errorf("%s: want=%d got=%d", label, want, got)
	}
}

const minimalTriangleObj = `v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
`

func TestMinimalTriangle(t *testing.T) {
	dir := t.TempDir()
	path := writeTemp(t, dir, "tri.obj", minimalTriangleObj)

	scene, err := Load(path, NONE, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	expectInt(t, "meshes", 1, len(scene.Meshes))
	expectInt(t, "positions", 3, len(scene.Positions))

	mesh := scene.Meshes[0]
	expectInt(t, "faces", 1, len(mesh.NumFaceVertices))
	expectInt(t, "corners", 3, int(mesh.NumFaceVertices[0]))
	expectInt(t, "material id", -1, mesh.MaterialIDs[0])

	want := []VertexIndex{{0, -1, -1}, {1, -1, -1}, {2, -1, -1}}
	for i, v := range want {
		if mesh.Indices[i] != v {
			t.Errorf("index %d: want=%+v got=%+v", i, v, mesh.Indices[i])
		}
	}
}

const mixedShapesObj = `v 0 0 0
v 1 0 0
v 0 1 0
vt 0 0
vt 1 0
vt 0 1
vn 0 0 1
vn 0 0 1
vn 0 0 1
f 1 2 3
f 1/1 2/2 3/3
f 1//1 2//2 3//3
f 1/1/1 2/2/2 3/3/3
`

func TestMixedIndexShapes(t *testing.T) {
	dir := t.TempDir()
	path := writeTemp(t, dir, "mixed.obj", mixedShapesObj)

	scene, err := Load(path, NONE, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	expectInt(t, "meshes", 1, len(scene.Meshes))
	mesh := scene.Meshes[0]
	expectInt(t, "faces", 4, len(mesh.NumFaceVertices))

	shapes := [][3]VertexIndex{
		{{0, -1, -1}, {1, -1, -1}, {2, -1, -1}},
		{{0, 0, -1}, {1, 1, -1}, {2, 2, -1}},
		{{0, -1, 0}, {1, -1, 1}, {2, -1, 2}},
		{{0, 0, 0}, {1, 1, 1}, {2, 2, 2}},
	}
	for fi, shape := range shapes {
		for ci, want := range shape {
			got := mesh.Indices[fi*3+ci]
			if got != want {
				t.Errorf("face %d corner %d: want=%+v got=%+v", fi, ci, want, got)
			}
		}
	}
}

const negativeIndexObj = `v 0 0 0
v 1 0 0
v 0 1 0
v 1 1 0
v 2 0 0
f -1 -2 -3
`

func TestNegativeIndices(t *testing.T) {
	dir := t.TempDir()
	path := writeTemp(t, dir, "neg.obj", negativeIndexObj)

	scene, err := Load(path, NONE, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	mesh := scene.Meshes[0]
	want := []VertexIndex{{4, -1, -1}, {3, -1, -1}, {2, -1, -1}}
	for i, v := range want {
		if mesh.Indices[i] != v {
			t.Errorf("index %d: want=%+v got=%+v", i, v, mesh.Indices[i])
		}
	}
}

const objectBoundaryObj = `o A
v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
o B
v 0 0 1
v 1 0 1
v 0 1 1
f 4 5 6
`

func TestObjectBoundaryFlushesMesh(t *testing.T) {
	dir := t.TempDir()
	path := writeTemp(t, dir, "boundary.obj", objectBoundaryObj)

	scene, err := Load(path, NONE, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	expectInt(t, "meshes", 2, len(scene.Meshes))
	if scene.Meshes[0].Name != "A" {
		t.Errorf("mesh 0 name: want=A got=%s", scene.Meshes[0].Name)
	}
	if scene.Meshes[1].Name != "B" {
		t.Errorf("mesh 1 name: want=B got=%s", scene.Meshes[1].Name)
	}
	expectInt(t, "mesh A faces", 1, len(scene.Meshes[0].NumFaceVertices))
	expectInt(t, "mesh B faces", 1, len(scene.Meshes[1].NumFaceVertices))
}

const usemtlMidObjectObj = `o Shape
v 0 0 0
v 1 0 0
v 0 1 0
v 1 1 0
usemtl red
f 1 2 3
usemtl blue
f 2 3 4
`

func TestUsemtlMidObject(t *testing.T) {
	dir := t.TempDir()
	writeTemp(t, dir, "mtl.mtl", "newmtl red\nnewmtl blue\n")
	obj := "mtllib mtl.mtl\n" + usemtlMidObjectObj
	path := writeTemp(t, dir, "usemtl.obj", obj)

	scene, err := Load(path, NONE, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	expectInt(t, "materials", 2, len(scene.Materials))

	var materialIDs []int
	for _, m := range scene.Meshes {
		materialIDs = append(materialIDs, m.MaterialIDs...)
	}
	expectInt(t, "material id entries", 2, len(materialIDs))
	if materialIDs[0] == materialIDs[1] {
		t.Errorf("expected distinct material ids per usemtl block, got %v", materialIDs)
	}
	for _, m := range scene.Meshes {
		if m.Name != "Shape" {
			t.Errorf("mesh name: want=Shape got=%s", m.Name)
		}
	}
}

func TestMtllibFirstAvailable(t *testing.T) {
	dir := t.TempDir()
	writeTemp(t, dir, "b.mtl", "newmtl present\n")
	obj := "mtllib a.mtl b.mtl\nv 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"
	path := writeTemp(t, dir, "lib.obj", obj)

	scene, err := Load(path, NONE, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	expectInt(t, "materials", 1, len(scene.Materials))
	if scene.Materials[0].Name != "present" {
		t.Errorf("material name: want=present got=%s", scene.Materials[0].Name)
	}
}

func TestFlipUV(t *testing.T) {
	dir := t.TempDir()
	obj := "vt 0.25 0.75\nv 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"
	path := writeTemp(t, dir, "uv.obj", obj)

	noFlip, err := Load(path, NONE, nil)
	if err != nil {
		t.Fatalf("Load (no flip): %v", err)
	}
	flip, err := Load(path, FLIP_UV, nil)
	if err != nil {
		t.Fatalf("Load (flip): %v", err)
	}

	if noFlip.Texcoords[0] != (Vec2{X: 0.25, Y: 0.75}) {
		t.Errorf("no-flip texcoord: got=%+v", noFlip.Texcoords[0])
	}
	if flip.Texcoords[0] != (Vec2{X: 0.25, Y: 0.25}) {
		t.Errorf("flip texcoord: got=%+v", flip.Texcoords[0])
	}
}

func TestForwardReferenceFailure(t *testing.T) {
	dir := t.TempDir()
	obj := "f 1 2 3\n"
	path := writeTemp(t, dir, "forward.obj", obj)

	if _, err := Load(path, NONE, nil); err == nil {
		t.Errorf("expected forward-reference error, got nil")
	}
}

func TestBadExtensionRejected(t *testing.T) {
	dir := t.TempDir()
	path := writeTemp(t, dir, "notanobj.txt", minimalTriangleObj)

	if _, err := Load(path, NONE, nil); err == nil {
		t.Errorf("expected ErrBadExtension, got nil")
	}
}

func TestLoadWrapsErrZeroIndex(t *testing.T) {
	dir := t.TempDir()
	obj := "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 0\n"
	path := writeTemp(t, dir, "zero.obj", obj)

	_, err := Load(path, NONE, nil)
	if !errors.Is(err, ErrZeroIndex) {
		t.Errorf("want errors.Is(err, ErrZeroIndex), got=%v", err)
	}
}

func TestLoadCROnlyLineEndings(t *testing.T) {
	dir := t.TempDir()
	obj := "v 0 0 0\rv 1 0 0\rv 0 1 0\rf 1 2 3\r"
	path := writeTemp(t, dir, "crmac.obj", obj)

	scene, err := Load(path, NONE, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	expectInt(t, "positions", 3, len(scene.Positions))
	expectInt(t, "meshes", 1, len(scene.Meshes))
	expectInt(t, "faces", 1, len(scene.Meshes[0].NumFaceVertices))
}

func TestLoadWrapsErrMalformedFace(t *testing.T) {
	dir := t.TempDir()
	obj := "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3x\n"
	path := writeTemp(t, dir, "malformed.obj", obj)

	_, err := Load(path, NONE, nil)
	if !errors.Is(err, ErrMalformedFace) {
		t.Errorf("want errors.Is(err, ErrMalformedFace), got=%v", err)
	}
}
