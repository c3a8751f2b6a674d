package main

import (
	"fmt"
	"os"

	"github.com/achilleasa/hybris/cmd"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	compileFlags := []cli.Flag{
		cli.StringFlag{
			Name:  "split",
			Usage: "BVH split strategy (median or sah); overrides the strategy requested by the scene",
		},
	}

	app := cli.NewApp()
	app.Name = "hybris"
	app.Usage = "build two-level BVH buffers for hybrid ray tracing"
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
		cli.StringFlag{
			Name:  "log-level",
			Usage: "set log level (debug, info, notice, warning, error)",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "compile",
			Usage: "compile scenes into GPU buffers",
			Description: `
Parse a scene manifest (yaml) or a single wavefront obj model, build a BVH
tree for each referenced model, place the model instances in world space and
pack everything into the buffer layout consumed by the tracer.`,
			ArgsUsage: "scene1.yaml scene2.obj ...",
			Flags: append(compileFlags, cli.BoolFlag{
				Name:  "verify",
				Usage: "verify the BVH invariants of every compiled model",
			}),
			Action: cmd.CompileScene,
		},
		{
			Name:        "inspect",
			Usage:       "compile a scene and display BVH statistics",
			Description: `Compile a scene, verify its BVH trees and display per-model and per-instance statistics.`,
			ArgsUsage:   "scene.yaml",
			Flags:       compileFlags,
			Action:      cmd.InspectScene,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
