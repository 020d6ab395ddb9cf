package writer

import (
	"os"

	"github.com/achilleasa/sahbvh/asset/scene"
)

// The Writer interface is implemented by all scene writers.
type Writer interface {
	// Write scene definition
	Write(*scene.Scene) error
}

// Write compiled scene to a zip file.
func WriteScene(sc *scene.Scene, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}

	err = newZipSceneWriter(f, filename).Write(sc)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	return err
}
