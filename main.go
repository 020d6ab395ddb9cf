package main

import (
	"os"

	"github.com/achilleasa/sahbvh/cmd"
	"github.com/achilleasa/sahbvh/log"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	validateFlag := cli.BoolFlag{
		Name:  "validate",
		Usage: "check the structural invariants of the generated trees",
	}

	app := cli.NewApp()
	app.Name = "sahbvh"
	app.Usage = "build bounding volume hierarchies using a binned surface area heuristic"
	app.Version = "0.0.1"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "compile",
			Usage: "compile wavefront meshes into a two-level BVH",
			Description: `
Parse triangle meshes from a wavefront obj file, build a BVH tree for each
mesh and a top-level BVH over the meshes and write the packed trees and the
reordered triangles to a zip archive next to the source file.`,
			ArgsUsage: "scene_file1.obj scene_file2.obj ...",
			Flags:     append([]cli.Flag{validateFlag}, cmd.BuildFlags...),
			Action:    cmd.CompileScene,
		},
		{
			Name:      "inspect",
			Usage:     "display information about a compiled scene",
			ArgsUsage: "scene_file.zip",
			Flags:     []cli.Flag{validateFlag},
			Action:    cmd.ShowSceneInfo,
		},
		{
			Name:  "bench",
			Usage: "benchmark BVH construction over random triangles",
			Flags: append([]cli.Flag{
				validateFlag,
				cli.IntFlag{
					Name:  "primitives, n",
					Value: 1000000,
					Usage: "number of random triangles",
				},
				cli.IntFlag{
					Name:  "runs",
					Value: 5,
					Usage: "number of builds to run",
				},
				cli.Int64Flag{
					Name:  "seed",
					Value: 1,
					Usage: "random generator seed",
				},
			}, cmd.BuildFlags...),
			Action: cmd.Benchmark,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.New("sahbvh").Errorf("%v", err)
		os.Exit(1)
	}
}
