package reader

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/achilleasa/sahbvh/asset/scene/writer"
	"github.com/google/go-cmp/cmp"
)

const cubeObj = `
o cube
v -1 -1 -1
v  1 -1 -1
v  1  1 -1
v -1  1 -1
v -1 -1  1
v  1 -1  1
v  1  1  1
v -1  1  1
f 1 2 3 4
f 5 6 7 8
f 1 2 6 5
f 4 3 7 8
f 1 4 8 5
f 2 3 7 6
o floor
v -10 -2 -10
v  10 -2 -10
v  10 -2  10
v -10 -2  10
f 9 10 11 12
`

func TestZipRoundTrip(t *testing.T) {
	dir := t.TempDir()
	objFile := filepath.Join(dir, "cube.obj")
	zipFile := filepath.Join(dir, "cube.zip")
	if err := os.WriteFile(objFile, []byte(cubeObj), 0644); err != nil {
		t.Fatal(err)
	}

	compiled, err := ReadScene(objFile, testOptions())
	if err != nil {
		t.Fatal(err)
	}
	if err = compiled.Validate(); err != nil {
		t.Fatal(err)
	}
	if compiled.PrimitiveCount() != 14 || len(compiled.MeshList) != 2 {
		t.Fatalf("expected 14 primitives in 2 meshes; got %d in %d", compiled.PrimitiveCount(), len(compiled.MeshList))
	}

	if err = writer.WriteScene(compiled, zipFile); err != nil {
		t.Fatal(err)
	}

	loaded, err := ReadScene(zipFile, testOptions())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(compiled, loaded); diff != "" {
		t.Fatalf("loaded scene does not match the written one (-want +got):\n%s", diff)
	}
}

func TestZipMissingSceneData(t *testing.T) {
	zipFile := filepath.Join(t.TempDir(), "empty.zip")
	f, err := os.Create(zipFile)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	w, _ := zw.Create("readme.txt")
	w.Write([]byte("nothing to see here"))
	zw.Close()
	f.Close()

	_, err = ReadScene(zipFile, testOptions())
	if err == nil || !strings.Contains(err.Error(), "does not contain scene.bin") {
		t.Fatalf("expected missing scene data error; got %v", err)
	}
}
