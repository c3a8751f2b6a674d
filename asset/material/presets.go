package material

import (
	"sort"

	"github.com/achilleasa/hybris/asset/compiler/input"
	"github.com/achilleasa/hybris/asset/scene"
	"github.com/achilleasa/hybris/types"
	"github.com/pkg/errors"
)

// The preset used by materials that do not select one.
const DefaultPreset = "diffuse"

var ErrUnknownPreset = errors.New("material: unknown preset")

var presets = map[string]scene.Material{
	"ground": {
		Albedo: types.Vec3{0.5, 0.5, 0.5},
	},
	"diffuse": {
		Albedo: types.Vec3{0.8, 0.8, 0.8},
	},
	"glass": {
		Albedo:          types.Vec3{1.0, 1.0, 1.0},
		RefractiveIndex: 1.5,
	},
	"mirror": {
		Albedo:     types.Vec3{1.0, 1.0, 1.0},
		Smoothness: 1.0,
	},
	"emissive": {
		Albedo:   types.Vec3{1.0, 1.0, 1.0},
		Emission: 15.0,
	},
}

// Lookup a material preset by name. An empty name selects DefaultPreset.
func Preset(name string) (scene.Material, error) {
	if name == "" {
		name = DefaultPreset
	}
	mat, exists := presets[name]
	if !exists {
		return scene.Material{}, errors.Wrapf(ErrUnknownPreset, "%q", name)
	}
	return mat, nil
}

// Get a sorted list of preset names.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve a material definition into its packed form by applying its
// overrides on top of the selected preset.
func Resolve(def *input.Material) (scene.Material, error) {
	mat, err := Preset(def.Preset)
	if err != nil {
		return mat, errors.Wrapf(err, "material %q", def.Name)
	}

	if def.Albedo != nil {
		mat.Albedo = *def.Albedo
	}
	if def.Absorption != nil {
		mat.Absorption = *def.Absorption
	}
	if def.Smoothness != nil {
		mat.Smoothness = *def.Smoothness
	}
	if def.Emission != nil {
		mat.Emission = *def.Emission
	}
	if def.RefractiveIndex != nil {
		mat.RefractiveIndex = *def.RefractiveIndex
	}

	return mat, nil
}
