package reader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/achilleasa/sahbvh/asset"
	"github.com/achilleasa/sahbvh/bvh"
	"github.com/achilleasa/sahbvh/types"
)

func testOptions() bvh.Options {
	return bvh.Options{
		BinCount:          8,
		MaxDepth:          32,
		TraversalCost:     1,
		ParallelThreshold: 1024,
		Workers:           1,
	}
}

func mockResource(name, payload string) *asset.Resource {
	return asset.NewResourceFromStream(name, strings.NewReader(payload))
}

func TestParseGeometry(t *testing.T) {
	payload := `
# a comment
mtllib materials.mtl
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vn 0 0 -1
vt 0 0

o quad
usemtl red
f 1 2 3 4

g tri
f -4//1 -3//1 -2//1

g empty
`
	sc, err := newWavefrontReader(testOptions()).ReadGeometry(mockResource("test.obj", payload))
	if err != nil {
		t.Fatal(err)
	}

	if len(sc.Meshes) != 2 {
		t.Fatalf("expected 2 meshes (empty mesh dropped); got %d", len(sc.Meshes))
	}

	quad := sc.Meshes[0]
	if quad.Name != "quad" || len(quad.Primitives) != 2 {
		t.Fatalf("expected quad mesh to contain 2 triangles; got %q with %d", quad.Name, len(quad.Primitives))
	}
	expVerts := [3]types.Vec3{types.XYZ(0, 0, 0), types.XYZ(1, 1, 0), types.XYZ(0, 1, 0)}
	if quad.Primitives[1].Vertices != expVerts {
		t.Fatalf("expected second quad triangle to be %v; got %v", expVerts, quad.Primitives[1].Vertices)
	}
	if expNormal := types.XYZ(0, 0, 1); quad.Primitives[0].Normals[0] != expNormal {
		t.Fatalf("expected generated normal %v; got %v", expNormal, quad.Primitives[0].Normals[0])
	}

	tri := sc.Meshes[1]
	if len(tri.Primitives) != 1 {
		t.Fatalf("expected 1 triangle; got %d", len(tri.Primitives))
	}
	expVerts = [3]types.Vec3{types.XYZ(0, 0, 0), types.XYZ(1, 0, 0), types.XYZ(1, 1, 0)}
	if tri.Primitives[0].Vertices != expVerts {
		t.Fatalf("expected triangle %v; got %v", expVerts, tri.Primitives[0].Vertices)
	}
	if expNormal := types.XYZ(0, 0, -1); tri.Primitives[0].Normals[2] != expNormal {
		t.Fatalf("expected parsed normal %v; got %v", expNormal, tri.Primitives[0].Normals[2])
	}
}

func TestDefaultMesh(t *testing.T) {
	payload := "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"
	sc, err := newWavefrontReader(testOptions()).ReadGeometry(mockResource("test.obj", payload))
	if err != nil {
		t.Fatal(err)
	}
	if len(sc.Meshes) != 1 || sc.Meshes[0].Name != "default" {
		t.Fatalf("expected faces without an object to be added to a default mesh")
	}
}

func TestParseErrors(t *testing.T) {
	type spec struct {
		payload string
		expErr  string
	}

	specs := []spec{
		{"v 1 2\n", `[test.obj: 1] error: unsupported syntax for "v"; expected 3 arguments; got 2`},
		{"v 1 2 foo\n", `[test.obj: 1] error: strconv.ParseFloat: parsing "foo": invalid syntax`},
		{"v 0 0 0\nf 1 1\n", `[test.obj: 2] error: unsupported syntax for "f"; expected 3 arguments for triangular face or 4 arguments for a quad face; got 2. Select the triangulation option in your exporter`},
		{"v 0 0 0\nf 1 1 5\n", `[test.obj: 2] error: could not parse vertex coord for face argument 2: index out of bounds`},
		{"v 0 0 0\nf 1 1/1 1\n", `[test.obj: 2] error: expected each face argument to contain 1 indices; arg 1 contains 2 indices`},
		{"v 0 0 0\nf /1 1 1\n", `[test.obj: 2] error: face argument 0 does not include a vertex index`},
		{"v 0 0 0\nf 1//1 1//1 1//1\n", `[test.obj: 2] error: could not parse normal coord for face argument 0: index out of bounds`},
		{"g\n", `[test.obj: 1] error: unsupported syntax for "g"; expected 1 argument for object name; got 0`},
		{"call\n", `[test.obj: 1] error: unsupported syntax for "call"; expected 1 argument; got 0`},
	}

	for index, s := range specs {
		_, err := newWavefrontReader(testOptions()).ReadGeometry(mockResource("test.obj", s.payload))
		if err == nil || err.Error() != s.expErr {
			t.Fatalf("[spec %d] expected error:\n%s\ngot:\n%v", index, s.expErr, err)
		}
	}
}

func TestCallIncludes(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"scene.obj":        "v 0 0 0\nv 1 0 0\nv 0 1 0\no base\nf 1 2 3\ncall parts/part.obj\n",
		"parts/part.obj":   "v 5 5 5\nv 6 5 5\nv 5 6 5\no part\nf 1 2 3\n",
		"broken.obj":       "o base\ncall parts/broken.obj\n",
		"parts/broken.obj": "v 0 0 0\nf 1 2 3\n",
	}
	if err := os.Mkdir(filepath.Join(dir, "parts"), 0755); err != nil {
		t.Fatal(err)
	}
	for name, payload := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(payload), 0644); err != nil {
			t.Fatal(err)
		}
	}

	sc, err := ReadGeometry(filepath.Join(dir, "scene.obj"))
	if err != nil {
		t.Fatal(err)
	}
	if len(sc.Meshes) != 2 || sc.Meshes[1].Name != "part" {
		t.Fatalf("expected included file to define a second mesh; got %d meshes", len(sc.Meshes))
	}
	// Positive indices in included files are relative to the included file
	expVerts := [3]types.Vec3{types.XYZ(5, 5, 5), types.XYZ(6, 5, 5), types.XYZ(5, 6, 5)}
	if sc.Meshes[1].Primitives[0].Vertices != expVerts {
		t.Fatalf("expected included triangle %v; got %v", expVerts, sc.Meshes[1].Primitives[0].Vertices)
	}

	_, err = ReadGeometry(filepath.Join(dir, "broken.obj"))
	if err == nil {
		t.Fatal("expected an error for broken include")
	}
	lines := strings.Split(err.Error(), "\n")
	if len(lines) != 2 || !strings.Contains(lines[0], "index out of bounds") || !strings.HasPrefix(lines[1], "referenced from ") || !strings.HasSuffix(lines[1], "broken.obj:2 [call]") {
		t.Fatalf("expected error to include the call stack; got:\n%v", err)
	}
}

func TestReadSceneUnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	sceneFile := filepath.Join(dir, "scene.fbx")
	if err := os.WriteFile(sceneFile, nil, 0644); err != nil {
		t.Fatal(err)
	}

	_, err := ReadScene(sceneFile, testOptions())
	if err == nil || !strings.Contains(err.Error(), "unsupported file format") {
		t.Fatalf("expected unsupported format error; got %v", err)
	}
}
