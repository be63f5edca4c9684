package motion

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/zoobzio/capitan"
	"gopkg.in/yaml.v3"
)

// ErrNoPresets is returned when a preset document defines no presets.
var ErrNoPresets = errors.New("motion: no presets defined")

// validate is the shared validator instance.
var validate = validator.New()

// presetFile is the YAML layout of a preset document:
//
//	presets:
//	  fadeInUp:
//	    stagger: 0.1
//	    variants:
//	      hidden: {opacity: 0, y: 20}
//	      visible:
//	        opacity: 1
//	        y: 0
//	        transition: {duration: 0.6, ease: "cubic-bezier(0.6, -0.05, 0.01, 0.99)"}
type presetFile struct {
	Presets map[string]presetSpec `yaml:"presets" validate:"dive"`
}

type presetSpec struct {
	Variants map[string]any `yaml:"variants" validate:"required,min=1"`
	// Stagger turns StaggerVariant into a dynamic variant delaying each
	// child by index*Stagger seconds.
	Stagger        float64 `yaml:"stagger" validate:"gte=0,lte=10"`
	StaggerVariant string  `yaml:"staggerVariant"`
}

// PresetLibrary is a set of named, sanitized variant maps loaded from YAML.
type PresetLibrary struct {
	presets  map[string]VariantMap
	rewrites []string
}

// LoadPresets decodes, validates and sanitizes a preset document. Unsupported
// easings are replaced with FallbackEasing; their paths are available from
// Rewrites.
func LoadPresets(data []byte) (*PresetLibrary, error) {
	lib, err := loadPresets(data)
	if err != nil {
		capitan.Emit(context.Background(), PresetsLoadFailed, KeyError.Field(err.Error()))
		return nil, err
	}
	for _, path := range lib.rewrites {
		debugf("presets: replaced easing at %s with %q", path, FallbackEasing)
		preset, _, _ := strings.Cut(path, ".")
		capitan.Emit(context.Background(), EasingRewritten, KeyPreset.Field(preset), KeyPath.Field(path))
	}
	capitan.Emit(context.Background(), PresetsLoaded, KeyCount.Field(len(lib.presets)))
	return lib, nil
}

func loadPresets(data []byte) (*PresetLibrary, error) {
	var file presetFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("unmarshal presets: %w", err)
	}
	if len(file.Presets) == 0 {
		return nil, ErrNoPresets
	}
	if err := validate.Struct(file); err != nil {
		return nil, fmt.Errorf("validate presets: %w", err)
	}

	lib := &PresetLibrary{presets: make(map[string]VariantMap, len(file.Presets))}
	for _, name := range slices.Sorted(maps.Keys(file.Presets)) {
		spec := file.Presets[name]
		vm := make(VariantMap, len(spec.Variants))
		for vname, raw := range spec.Variants {
			node := FromValue(raw)
			for _, p := range UnsupportedEasingPaths(node) {
				lib.rewrites = append(lib.rewrites, name+"."+vname+"."+p)
			}
			vm[vname] = Static(node)
		}
		if spec.Stagger > 0 {
			target := spec.StaggerVariant
			if target == "" {
				target = "visible"
			}
			base, ok := vm[target]
			if !ok {
				return nil, fmt.Errorf("preset %q: stagger variant %q not defined", name, target)
			}
			vm[target] = Stagger(base.Resolve(), spec.Stagger)
		}
		lib.presets[name] = SanitizeVariants(vm)
	}
	slices.Sort(lib.rewrites)
	return lib, nil
}

// Variants returns the sanitized variants of the named preset.
func (l *PresetLibrary) Variants(name string) (VariantMap, bool) {
	vm, ok := l.presets[name]
	return vm, ok
}

// Names returns the preset names in sorted order.
func (l *PresetLibrary) Names() []string {
	return slices.Sorted(maps.Keys(l.presets))
}

// Len returns the number of presets.
func (l *PresetLibrary) Len() int {
	return len(l.presets)
}

// Rewrites returns the paths ("preset.variant.key...") whose easing was
// replaced during loading, sorted.
func (l *PresetLibrary) Rewrites() []string {
	out := make([]string, len(l.rewrites))
	copy(out, l.rewrites)
	return out
}
