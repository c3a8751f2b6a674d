package cmd

import (
	"errors"

	"github.com/achilleasa/hybris/asset/compiler"
	"github.com/achilleasa/hybris/asset/compiler/bvh"
	"github.com/achilleasa/hybris/asset/reader"
	"github.com/achilleasa/hybris/asset/scene"
	"github.com/achilleasa/hybris/tracer"
	"github.com/urfave/cli"
)

// Read a scene file and compile it using the split strategy selected by the
// command flags (or the scene itself if no strategy flag is present).
func loadAndCompile(ctx *cli.Context, sceneFile string) (*compiler.Compiler, *scene.Buffers, error) {
	var strategy bvh.SplitStrategy
	if name := ctx.String("split"); name != "" {
		var err error
		if strategy, err = bvh.StrategyByName(name); err != nil {
			return nil, nil, err
		}
	}

	logger.Noticef("parsing and compiling scene: %s", sceneFile)
	sc, err := reader.ReadScene(sceneFile)
	if err != nil {
		return nil, nil, err
	}

	return compiler.CompileScene(sc, strategy)
}

// Compile scenes into GPU buffers and report their layout.
func CompileScene(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	if ctx.NArg() == 0 {
		return errors.New("missing scene file argument")
	}

	slot := tracer.NewSceneSlot()
	for idx := 0; idx < ctx.NArg(); idx++ {
		sceneFile := ctx.Args().Get(idx)
		c, buffers, err := loadAndCompile(ctx, sceneFile)
		if err != nil {
			return err
		}

		if ctx.Bool("verify") {
			if err = c.Verify(); err != nil {
				return err
			}
			logger.Notice("verified BVH invariants")
		}

		encoded, err := buffers.Encode()
		if err != nil {
			return err
		}

		if err = slot.Install(buffers); err != nil {
			return err
		}

		// Display compiled scene info
		logger.Noticef("scene information (generation %s, %d encoded bytes):\n%s", buffers.Generation, encoded.Len(), buffers.Stats())
	}

	return nil
}
