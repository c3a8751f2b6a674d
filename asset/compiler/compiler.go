package compiler

import (
	"time"

	"github.com/achilleasa/hybris/asset/compiler/bvh"
	"github.com/achilleasa/hybris/asset/compiler/input"
	"github.com/achilleasa/hybris/asset/material"
	"github.com/achilleasa/hybris/asset/scene"
	"github.com/achilleasa/hybris/log"
	"github.com/achilleasa/hybris/types"
	"github.com/pkg/errors"
)

// The index of the default material which is always registered first.
const DefaultMaterialIndex uint32 = 0

// An Object is a model placed in the scene.
type Object struct {
	ModelPath string

	Position types.Vec3

	// Rotation angles in degrees; applied X first, then Y, then Z.
	Rotation types.Vec3
	Scale    types.Vec3

	MaterialIndex uint32
}

// Get the object-to-world transformation.
func (o *Object) Transform() types.Mat4 {
	return types.Transform4(o.Position, o.Rotation, o.Scale)
}

type sceneObject struct {
	Object
	template *Template
}

// A Compiler maintains the scene object list, the material registry and the
// store shared by all loaded models, and packs them into buffers for the
// tracer. It is not safe for concurrent use.
type Compiler struct {
	logger    log.Logger
	store     *Store
	models    *ModelCompiler
	assembler *Assembler

	// Removed objects leave a nil entry so object indices remain stable.
	objects []*sceneObject

	materialIndices map[scene.Material]uint32
}

// Create a new compiler. A nil strategy selects the median split.
func New(strategy bvh.SplitStrategy) *Compiler {
	store := NewStore()
	c := &Compiler{
		logger:          log.New("scene compiler"),
		store:           store,
		models:          NewModelCompiler(store, strategy),
		assembler:       NewAssembler(store),
		objects:         make([]*sceneObject, 0),
		materialIndices: make(map[scene.Material]uint32),
	}

	defMat, err := material.Preset(material.DefaultPreset)
	if err != nil {
		panic(err)
	}
	c.AddMaterial(defMat)
	return c
}

// Get the store backing this compiler.
func (c *Compiler) Store() *Store {
	return c.store
}

// Get the loaded model templates in load order.
func (c *Compiler) Templates() []*Template {
	return c.models.Templates()
}

// Load a model without placing it in the scene.
func (c *Compiler) LoadModel(path string) (*Template, error) {
	return c.models.LoadModel(path)
}

// Register a material and return its index. Registering a material with the
// same parameters as an existing one returns the existing index.
func (c *Compiler) AddMaterial(mat scene.Material) uint32 {
	if index, exists := c.materialIndices[mat]; exists {
		return index
	}

	index := uint32(len(c.store.Materials))
	c.store.Materials = append(c.store.Materials, mat)
	c.materialIndices[mat] = index
	return index
}

// Resolve a material definition against its preset and register it.
func (c *Compiler) AddMaterialDef(def *input.Material) (uint32, error) {
	mat, err := material.Resolve(def)
	if err != nil {
		return 0, err
	}
	return c.AddMaterial(mat), nil
}

// Load the object model (if not already loaded), append the object to the
// scene and place it. Returns the object index.
func (c *Compiler) AddObject(obj Object) (uint32, error) {
	so, err := c.prepareObject(obj)
	if err != nil {
		return 0, err
	}

	index := uint32(len(c.objects))
	c.objects = append(c.objects, so)
	c.assembler.Place(so.template, so.Transform(), index, so.MaterialIndex)
	return index, nil
}

// Replace the object at index and rebuild the instance list.
func (c *Compiler) UpdateObject(index uint32, obj Object) error {
	if _, err := c.Object(index); err != nil {
		return err
	}

	so, err := c.prepareObject(obj)
	if err != nil {
		return err
	}

	c.objects[index] = so
	c.rebuildInstances()
	return nil
}

// Remove the object at index and rebuild the instance list. The indices of
// the remaining objects do not change.
func (c *Compiler) RemoveObject(index uint32) error {
	if _, err := c.Object(index); err != nil {
		return err
	}

	c.objects[index] = nil
	c.rebuildInstances()
	return nil
}

// Get the object at index.
func (c *Compiler) Object(index uint32) (Object, error) {
	if int(index) >= len(c.objects) || c.objects[index] == nil {
		return Object{}, errors.Wrapf(ErrUnknownObject, "index %d", index)
	}
	return c.objects[index].Object, nil
}

// Get the number of live objects.
func (c *Compiler) ObjectCount() int {
	count := 0
	for _, so := range c.objects {
		if so != nil {
			count++
		}
	}
	return count
}

// Rebuild the instance list from the live objects and pack the store into
// a new buffer set.
func (c *Compiler) Compile() *scene.Buffers {
	start := time.Now()
	c.rebuildInstances()
	out := Pack(c.store)

	c.logger.Noticef(
		"compiled scene in %d ms: %d instances, %d templates, %d triangles, %d nodes, %d materials",
		time.Since(start).Nanoseconds()/1e6,
		len(out.Instances), len(c.models.Templates()), out.TriangleCount(), len(out.BvhNodes), len(out.Materials),
	)
	return out
}

// Verify the BVH invariants of every loaded template and check that all
// instance records reference a valid template range.
func (c *Compiler) Verify() error {
	for _, tpl := range c.models.Templates() {
		if err := c.models.Verify(tpl); err != nil {
			return err
		}
	}

	for index, rec := range c.store.Instances {
		end := uint64(rec.TriangleStart) + uint64(rec.TriangleCount)
		if rec.TriangleCount == 0 || end > uint64(len(c.store.Triangles)) {
			return errors.Errorf("instance %d: invalid triangle range [%d, %d)", index, rec.TriangleStart, end)
		}
		if int(rec.MaterialIndex) >= len(c.store.Materials) {
			return errors.Wrapf(ErrUnknownMaterial, "instance %d: material %d", index, rec.MaterialIndex)
		}
	}
	return nil
}

func (c *Compiler) prepareObject(obj Object) (*sceneObject, error) {
	if int(obj.MaterialIndex) >= len(c.store.Materials) {
		return nil, errors.Wrapf(ErrUnknownMaterial, "index %d", obj.MaterialIndex)
	}

	tpl, err := c.models.LoadModel(obj.ModelPath)
	if err != nil {
		return nil, err
	}

	obj.ModelPath = tpl.Path
	return &sceneObject{Object: obj, template: tpl}, nil
}

func (c *Compiler) rebuildInstances() {
	c.store.resetInstances()
	for index, so := range c.objects {
		if so == nil {
			continue
		}
		c.assembler.Place(so.template, so.Transform(), uint32(index), so.MaterialIndex)
	}
}

// Compile a scene description. If strategy is nil, the split strategy
// requested by the scene is used.
func CompileScene(sc *input.Scene, strategy bvh.SplitStrategy) (*Compiler, *scene.Buffers, error) {
	if strategy == nil {
		var err error
		if strategy, err = bvh.StrategyByName(sc.Split); err != nil {
			return nil, nil, errors.Wrapf(err, "%q", sc.Split)
		}
	}

	c := New(strategy)
	matIndices := make(map[string]uint32, len(sc.Materials))
	for _, def := range sc.Materials {
		index, err := c.AddMaterialDef(def)
		if err != nil {
			return nil, nil, err
		}
		matIndices[def.Name] = index
	}

	for index, placement := range sc.Objects {
		matIndex := DefaultMaterialIndex
		if placement.Material != "" {
			var exists bool
			if matIndex, exists = matIndices[placement.Material]; !exists {
				return nil, nil, errors.Wrapf(ErrUnknownMaterial, "object %d references material %q", index, placement.Material)
			}
		}

		_, err := c.AddObject(Object{
			ModelPath:     placement.ModelPath,
			Position:      placement.Position,
			Rotation:      placement.Rotation,
			Scale:         placement.Scale,
			MaterialIndex: matIndex,
		})
		if err != nil {
			return nil, nil, err
		}
	}

	return c, c.Compile(), nil
}
