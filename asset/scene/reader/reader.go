package reader

import (
	"strings"

	"github.com/achilleasa/sahbvh/asset"
	"github.com/achilleasa/sahbvh/asset/compiler"
	"github.com/achilleasa/sahbvh/asset/compiler/input"
	"github.com/achilleasa/sahbvh/asset/scene"
	"github.com/achilleasa/sahbvh/bvh"
	"github.com/pkg/errors"
)

// The Reader interface is implemented by all scene readers.
type Reader interface {
	// Read scene definition from a resource.
	Read(*asset.Resource) (*scene.Scene, error)
}

// Read scene from file. Wavefront files are compiled using the supplied BVH
// options while zip files contain an already compiled scene.
func ReadScene(filename string, opts bvh.Options) (*scene.Scene, error) {
	res, err := asset.NewResource(filename, nil)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	// Select reader based on file extension
	var reader Reader
	if strings.HasSuffix(filename, ".obj") {
		reader = newWavefrontReader(opts)
	} else if strings.HasSuffix(filename, ".zip") {
		reader = newZipSceneReader()
	} else {
		return nil, errors.Errorf("readScene: unsupported file format for %q", filename)
	}
	return reader.Read(res)
}

// Read the scene geometry from a wavefront file without compiling it.
func ReadGeometry(filename string) (*input.Scene, error) {
	if !strings.HasSuffix(filename, ".obj") {
		return nil, errors.Errorf("readGeometry: unsupported file format for %q", filename)
	}

	res, err := asset.NewResource(filename, nil)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	return newWavefrontReader(bvh.Options{}).ReadGeometry(res)
}

// compile is used by readers producing raw geometry.
func compile(parsed *input.Scene, opts bvh.Options) (*scene.Scene, error) {
	res, err := compiler.Compile(parsed, opts)
	if err != nil {
		return nil, err
	}
	return res.Scene, nil
}
