package cmd

import (
	"errors"
	"strings"

	"github.com/achilleasa/sahbvh/asset/compiler"
	"github.com/achilleasa/sahbvh/asset/scene"
	"github.com/achilleasa/sahbvh/asset/scene/reader"
	"github.com/achilleasa/sahbvh/asset/scene/writer"
	"github.com/achilleasa/sahbvh/bvh"
	"github.com/urfave/cli"
	"go.uber.org/multierr"
)

// Compile scene to binary format.
func CompileScene(ctx *cli.Context) error {
	setupLogging(ctx)

	opts, err := optionsFromContext(ctx)
	if err != nil {
		return err
	}

	for idx := 0; idx < ctx.NArg(); idx++ {
		sceneFile := ctx.Args().Get(idx)
		if !strings.HasSuffix(sceneFile, ".obj") {
			logger.Warningf("skipping unsupported file %s", sceneFile)
			continue
		}

		logger.Noticef("parsing and compiling scene: %s", sceneFile)
		parsed, err := reader.ReadGeometry(sceneFile)
		if err != nil {
			return err
		}

		res, err := compiler.Compile(parsed, opts)
		if err != nil {
			return err
		}

		if ctx.Bool("validate") {
			if err = validate(res.Scene); err != nil {
				return err
			}
		}

		// Display compiled scene info
		logger.Noticef("scene information:\n%s", res.Scene.Stats())
		logger.Noticef("top-level BVH:\n%s", res.TopLevel.Table())
		for index, stats := range res.MeshStats {
			logger.Infof("BVH for mesh %q:\n%s", res.Scene.MeshList[index].Name, stats.Table())
		}

		zipFile := strings.TrimSuffix(sceneFile, ".obj") + ".zip"
		err = writer.WriteScene(res.Scene, zipFile)
		if err != nil {
			return err
		}
	}

	return nil
}

// Display compiled scene info.
func ShowSceneInfo(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing compiled scene zip file")
	}

	sceneFile := ctx.Args().First()
	if !strings.HasSuffix(sceneFile, ".zip") {
		return errors.New("only compiled scene files with a .zip extension are supported")
	}

	// Compiled scenes are not rebuilt so no build options are needed.
	sc, err := reader.ReadScene(sceneFile, bvh.Options{})
	if err != nil {
		return err
	}

	if ctx.Bool("validate") {
		if err = validate(sc); err != nil {
			return err
		}
	}

	// Display compiled scene info
	logger.Noticef("scene information:\n%s", sc.Stats())

	return nil
}

func validate(sc *scene.Scene) error {
	if err := sc.Validate(); err != nil {
		for _, violation := range multierr.Errors(err) {
			logger.Error(violation.Error())
		}
		return errors.New("scene validation failed")
	}
	logger.Notice("compiled scene passed validation")
	return nil
}
