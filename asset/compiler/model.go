package compiler

import (
	"time"

	"github.com/achilleasa/hybris/asset"
	"github.com/achilleasa/hybris/asset/compiler/bvh"
	"github.com/achilleasa/hybris/asset/reader"
	"github.com/achilleasa/hybris/log"
	"github.com/achilleasa/hybris/types"
	"github.com/pkg/errors"
)

// Zero-extent axes of a model bbox are padded by this amount on each side.
const flatAxisPadding = 1.0

// A Template describes a loaded model: the location of its triangles and BVH
// nodes inside the store and an object-space prototype instance record.
// Templates are read-only once built.
type Template struct {
	Path string

	TriangleStart uint32
	TriangleCount uint32

	NodeStart uint32
	NodeCount uint32

	Stats bvh.Stats

	Prototype InstanceRecord
}

// The ModelCompiler loads meshes, builds their BVH and appends the results
// to the store. Each distinct model path is only loaded once.
type ModelCompiler struct {
	logger   log.Logger
	store    *Store
	strategy bvh.SplitStrategy

	templates map[string]*Template
	loadOrder []*Template
}

// Create a model compiler that appends to store. A nil strategy selects the
// median split.
func NewModelCompiler(store *Store, strategy bvh.SplitStrategy) *ModelCompiler {
	if strategy == nil {
		strategy = bvh.MedianSplit
	}
	return &ModelCompiler{
		logger:    log.New("model compiler"),
		store:     store,
		strategy:  strategy,
		templates: make(map[string]*Template),
		loadOrder: make([]*Template, 0),
	}
}

// Get the loaded templates in load order.
func (mc *ModelCompiler) Templates() []*Template {
	return mc.loadOrder
}

// Load the model at path and return its template. If the model has already
// been loaded, its cached template is returned and the store is not touched.
//
// Reading and BVH construction complete before anything is appended to the
// store; a failed load leaves the store unchanged.
func (mc *ModelCompiler) LoadModel(path string) (*Template, error) {
	if !reader.IsMeshFormat(path) {
		return nil, errors.Wrapf(reader.ErrUnsupportedFormat, "%s", path)
	}

	resURL, err := asset.ResolvePath(path, nil)
	if err != nil {
		return nil, err
	}
	key := resURL.String()
	if tpl, exists := mc.templates[key]; exists {
		return tpl, nil
	}

	start := time.Now()
	res, err := asset.NewResource(key, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "compiler: could not load model %q", path)
	}
	defer res.Close()

	tris, err := reader.ReadMesh(res)
	if err != nil {
		return nil, errors.Wrapf(err, "compiler: could not load model %q", path)
	}

	modelBBox := types.EmptyBBox()
	for i := range tris {
		tris[i].GrowBBox(&modelBBox)
	}
	modelBBox = modelBBox.PadZeroExtent(flatAxisPadding)

	tree := bvh.Build(tris, modelBBox, mc.strategy)

	// Remap local indices to absolute store offsets
	triOffset := uint32(len(mc.store.Triangles))
	nodeOffset := int32(len(mc.store.Nodes))
	root := tree.Root
	root.OffsetIndices(nodeOffset, triOffset)
	for i := range tree.Nodes {
		tree.Nodes[i].OffsetIndices(nodeOffset, triOffset)
	}

	mc.store.appendModel(tris, tree.Nodes)

	tpl := &Template{
		Path:          key,
		TriangleStart: triOffset,
		TriangleCount: uint32(len(tris)),
		NodeStart:     uint32(nodeOffset),
		NodeCount:     uint32(len(tree.Nodes)),
		Stats:         tree.Stats,
		Prototype: InstanceRecord{
			Box:           root.BBox(),
			Slot:          TemplateSlot(),
			LeftChild:     root.LeftChild,
			RightChild:    root.RightChild,
			TriangleStart: root.TriangleStart,
			TriangleCount: root.TriangleCount,
			Transform:     types.Ident4(),
		},
	}
	mc.templates[key] = tpl
	mc.loadOrder = append(mc.loadOrder, tpl)

	mc.logger.Infof(
		"compiled model %q in %d ms: %d triangles, %d nodes, max depth %d (%s split)",
		key, time.Since(start).Nanoseconds()/1e6, tpl.TriangleCount, tpl.NodeCount+1, tree.Stats.MaxDepth, mc.strategy,
	)
	return tpl, nil
}

// Verify the BVH invariants of a loaded template against the store contents.
func (mc *ModelCompiler) Verify(tpl *Template) error {
	visited, err := bvh.Validate(tpl.Prototype.RootNode(), mc.store.Nodes, mc.store.Triangles)
	if err != nil {
		return errors.Wrapf(err, "model %q", tpl.Path)
	}
	if uint32(visited) != tpl.NodeCount {
		return errors.Errorf("model %q: expected %d reachable nodes; got %d", tpl.Path, tpl.NodeCount, visited)
	}
	return nil
}
