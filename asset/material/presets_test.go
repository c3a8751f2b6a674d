package material

import (
	"testing"

	"github.com/achilleasa/hybris/asset/compiler/input"
	"github.com/achilleasa/hybris/types"
	"github.com/pkg/errors"
)

func TestPresetLookup(t *testing.T) {
	def, err := Preset("")
	if err != nil {
		t.Fatal(err)
	}
	diffuse, _ := Preset("diffuse")
	if def != diffuse {
		t.Fatalf("expected empty preset name to select %q", DefaultPreset)
	}

	glass, err := Preset("glass")
	if err != nil {
		t.Fatal(err)
	}
	if glass.RefractiveIndex != 1.5 {
		t.Fatalf("expected glass refractive index to be 1.5; got %f", glass.RefractiveIndex)
	}

	if _, err = Preset("chrome"); errors.Cause(err) != ErrUnknownPreset {
		t.Fatalf("expected ErrUnknownPreset; got %v", err)
	}

	names := PresetNames()
	exp := []string{"diffuse", "emissive", "glass", "ground", "mirror"}
	if len(names) != len(exp) {
		t.Fatalf("expected %d presets; got %d", len(exp), len(names))
	}
	for i := range exp {
		if names[i] != exp[i] {
			t.Fatalf("expected preset %d to be %q; got %q", i, exp[i], names[i])
		}
	}
}

func TestResolveOverrides(t *testing.T) {
	red := types.Vec3{1, 0, 0}
	smoothness := float32(0.25)
	def := &input.Material{
		Name:       "red mirror",
		Preset:     "mirror",
		Albedo:     &red,
		Smoothness: &smoothness,
	}

	mat, err := Resolve(def)
	if err != nil {
		t.Fatal(err)
	}
	if mat.Albedo != red || mat.Smoothness != 0.25 {
		t.Fatalf("expected overrides to be applied; got %+v", mat)
	}
	if mat.Emission != 0 || mat.RefractiveIndex != 0 {
		t.Fatalf("expected non-overridden fields to keep preset values; got %+v", mat)
	}

	def.Preset = "chrome"
	if _, err = Resolve(def); errors.Cause(err) != ErrUnknownPreset {
		t.Fatalf("expected ErrUnknownPreset; got %v", err)
	}
}
