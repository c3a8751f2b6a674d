package cmd

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/achilleasa/hybris/asset/compiler"
	"github.com/achilleasa/hybris/asset/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Compile a scene and display per-model BVH statistics and the placed instances.
func InspectScene(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	if ctx.NArg() != 1 {
		return errors.New("missing scene file argument")
	}

	c, buffers, err := loadAndCompile(ctx, ctx.Args().First())
	if err != nil {
		return err
	}

	if err = c.Verify(); err != nil {
		return err
	}

	logger.Noticef("models:\n%s", templateTable(c.Templates()))
	logger.Noticef("instances:\n%s", instanceTable(buffers))
	logger.Noticef("buffers:\n%s", buffers.Stats())
	return nil
}

func templateTable(templates []*compiler.Template) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Model", "Triangles", "Nodes", "Leafs", "Max depth", "Max leaf size", "Bounds"})
	for _, tpl := range templates {
		table.Append([]string{
			tpl.Path,
			fmt.Sprintf("[%d, %d)", tpl.TriangleStart, tpl.TriangleStart+tpl.TriangleCount),
			fmt.Sprintf("[%d, %d)", tpl.NodeStart, tpl.NodeStart+tpl.NodeCount),
			fmt.Sprint(tpl.Stats.Leafs),
			fmt.Sprint(tpl.Stats.MaxDepth),
			fmt.Sprint(tpl.Stats.MaxLeafSize),
			tpl.Prototype.Box.String(),
		})
	}

	table.Render()
	return buf.String()
}

func instanceTable(buffers *scene.Buffers) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Object", "Material", "Children", "Triangles", "Bounds"})
	for _, inst := range buffers.Instances {
		table.Append([]string{
			fmt.Sprint(inst.ObjectIndex),
			fmt.Sprint(inst.MaterialIndex),
			fmt.Sprintf("%d, %d", inst.LeftChild, inst.RightChild),
			fmt.Sprintf("[%d, %d)", inst.TriangleStart, inst.TriangleStart+inst.TriangleCount),
			fmt.Sprintf("[%v - %v]", inst.Min, inst.Max),
		})
	}

	table.Render()
	return buf.String()
}
