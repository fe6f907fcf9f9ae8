package filter

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownFilter is returned by Lookup for names that are not registered.
var ErrUnknownFilter = errors.New("unknown filter")

// Params carries the scalar parameters a filter may read.
type Params struct {
	// Amount is the signed integer parameter of brightness and contrast.
	Amount int
	// Strength is the vignette strength, typically in [0, 1].
	Strength float32
}

// Param names a parameter a filter consumes.
type Param string

const (
	ParamAmount   Param = "amount"
	ParamStrength Param = "strength"
)

// Descriptor describes one registered filter.
type Descriptor struct {
	Name    string
	Summary string
	Params  []Param
	apply   func(pix []byte, width, height int, p Params) error
}

// Apply runs the filter in place on a width x height buffer.
func (d Descriptor) Apply(pix []byte, width, height int, p Params) error {
	return d.apply(pix, width, height, p)
}

// pixelOnly adapts a parameterless in-place filter.
func pixelOnly(fn func([]byte)) func([]byte, int, int, Params) error {
	return func(pix []byte, _, _ int, _ Params) error {
		fn(pix)
		return nil
	}
}

var registry = map[string]Descriptor{
	"grayscale": {
		Name:    "grayscale",
		Summary: "Rec. 601 luma on all channels",
		apply:   pixelOnly(Grayscale),
	},
	"invert": {
		Name:    "invert",
		Summary: "255 minus each channel",
		apply:   pixelOnly(Invert),
	},
	"brightness": {
		Name:    "brightness",
		Summary: "add amount to each channel",
		Params:  []Param{ParamAmount},
		apply: func(pix []byte, _, _ int, p Params) error {
			Brightness(pix, p.Amount)
			return nil
		},
	},
	"sepia": {
		Name:    "sepia",
		Summary: "sepia tone matrix",
		apply:   pixelOnly(Sepia),
	},
	"contrast": {
		Name:    "contrast",
		Summary: "stretch channels around mid-gray by amount",
		Params:  []Param{ParamAmount},
		apply: func(pix []byte, _, _ int, p Params) error {
			return Contrast(pix, p.Amount)
		},
	},
	"vignette": {
		Name:    "vignette",
		Summary: "darken toward the corners by strength",
		Params:  []Param{ParamStrength},
		apply: func(pix []byte, width, height int, p Params) error {
			return Vignette(pix, width, height, p.Strength)
		},
	},
	"lofi": {
		Name:    "lofi",
		Summary: "desaturate, warm tint and fixed-seed grain",
		apply:   pixelOnly(Lofi),
	},
	"vintage": {
		Name:    "vintage",
		Summary: "faded magenta tint",
		apply:   pixelOnly(Vintage),
	},
	"cyberpunk": {
		Name:    "cyberpunk",
		Summary: "cyan/magenta split",
		apply:   pixelOnly(Cyberpunk),
	},
}

// Lookup returns the descriptor registered under name.
func Lookup(name string) (Descriptor, error) {
	d, ok := registry[name]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %q", ErrUnknownFilter, name)
	}
	return d, nil
}

// Names returns the registered filter names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
