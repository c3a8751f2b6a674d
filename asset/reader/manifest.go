package reader

import (
	"io/ioutil"

	"github.com/achilleasa/hybris/asset"
	"github.com/achilleasa/hybris/asset/compiler/input"
	"github.com/achilleasa/hybris/types"
	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"
)

type manifestMaterial struct {
	Name            string    `yaml:"name"`
	Preset          string    `yaml:"preset,omitempty"`
	Albedo          []float32 `yaml:"albedo,omitempty"`
	Absorption      []float32 `yaml:"absorption,omitempty"`
	Smoothness      *float32  `yaml:"smoothness,omitempty"`
	Emission        *float32  `yaml:"emission,omitempty"`
	RefractiveIndex *float32  `yaml:"refractive_index,omitempty"`
}

type manifestObject struct {
	Model    string    `yaml:"model"`
	Position []float32 `yaml:"position,omitempty"`
	Rotation []float32 `yaml:"rotation,omitempty"`
	Scale    []float32 `yaml:"scale,omitempty"`
	Material string    `yaml:"material,omitempty"`
}

type manifest struct {
	Split     string             `yaml:"split,omitempty"`
	Materials []manifestMaterial `yaml:"materials"`
	Objects   []manifestObject   `yaml:"objects"`
}

// Read a scene from file. Yaml files are parsed as scene manifests; mesh
// files produce a scene with a single object at the origin.
func ReadScene(filename string) (*input.Scene, error) {
	res, err := asset.NewResource(filename, nil)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	switch ext := res.Ext(); {
	case ext == ".yaml" || ext == ".yml":
		return ReadManifest(res)
	case MeshReaderFor(ext) != nil:
		sc := input.NewScene()
		sc.Objects = append(sc.Objects, &input.Placement{
			ModelPath: res.Path(),
			Scale:     types.Vec3{1, 1, 1},
		})
		return sc, nil
	}

	return nil, errors.Wrapf(ErrUnsupportedFormat, "%s", filename)
}

// Parse a yaml scene manifest. Model paths are resolved relative to the
// manifest resource.
func ReadManifest(res *asset.Resource) (*input.Scene, error) {
	data, err := ioutil.ReadAll(res)
	if err != nil {
		return nil, errors.Wrapf(err, "reader: could not read %q", res.Path())
	}

	var m manifest
	if err = yaml.UnmarshalStrict(data, &m); err != nil {
		return nil, errors.Wrapf(ErrInvalidManifest, "%s: %s", res.Path(), err)
	}

	sc := input.NewScene()
	sc.Split = m.Split

	known := make(map[string]bool)
	for index, mm := range m.Materials {
		if mm.Name == "" {
			return nil, errors.Wrapf(ErrInvalidManifest, "%s: material %d has no name", res.Path(), index)
		}
		if known[mm.Name] {
			return nil, errors.Wrapf(ErrInvalidManifest, "%s: duplicate material %q", res.Path(), mm.Name)
		}
		known[mm.Name] = true

		mat := &input.Material{
			Name:            mm.Name,
			Preset:          mm.Preset,
			Smoothness:      mm.Smoothness,
			Emission:        mm.Emission,
			RefractiveIndex: mm.RefractiveIndex,
		}
		if mat.Albedo, err = optionalVec3(mm.Albedo); err != nil {
			return nil, errors.Wrapf(ErrInvalidManifest, "%s: material %q albedo: %s", res.Path(), mm.Name, err)
		}
		if mat.Absorption, err = optionalVec3(mm.Absorption); err != nil {
			return nil, errors.Wrapf(ErrInvalidManifest, "%s: material %q absorption: %s", res.Path(), mm.Name, err)
		}
		sc.Materials = append(sc.Materials, mat)
	}

	for index, mo := range m.Objects {
		if mo.Model == "" {
			return nil, errors.Wrapf(ErrInvalidManifest, "%s: object %d does not specify a model", res.Path(), index)
		}
		if mo.Material != "" && !known[mo.Material] {
			return nil, errors.Wrapf(ErrUnknownMaterial, "%s: object %d references material %q", res.Path(), index, mo.Material)
		}

		modelURL, err := asset.ResolvePath(mo.Model, res)
		if err != nil {
			return nil, err
		}

		placement := &input.Placement{
			ModelPath: modelURL.String(),
			Material:  mo.Material,
		}
		if placement.Position, err = vec3OrDefault(mo.Position, types.Vec3{}); err != nil {
			return nil, errors.Wrapf(ErrInvalidManifest, "%s: object %d position: %s", res.Path(), index, err)
		}
		if placement.Rotation, err = vec3OrDefault(mo.Rotation, types.Vec3{}); err != nil {
			return nil, errors.Wrapf(ErrInvalidManifest, "%s: object %d rotation: %s", res.Path(), index, err)
		}
		if placement.Scale, err = vec3OrDefault(mo.Scale, types.Vec3{1, 1, 1}); err != nil {
			return nil, errors.Wrapf(ErrInvalidManifest, "%s: object %d scale: %s", res.Path(), index, err)
		}
		sc.Objects = append(sc.Objects, placement)
	}

	return sc, nil
}

func vec3OrDefault(v []float32, def types.Vec3) (types.Vec3, error) {
	if v == nil {
		return def, nil
	}
	if len(v) != 3 {
		return def, errors.Errorf("expected 3 components; got %d", len(v))
	}
	return types.Vec3{v[0], v[1], v[2]}, nil
}

func optionalVec3(v []float32) (*types.Vec3, error) {
	if v == nil {
		return nil, nil
	}
	out, err := vec3OrDefault(v, types.Vec3{})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
