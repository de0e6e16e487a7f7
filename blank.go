package configr

import (
	modellib "github.com/ygrebnov/model"
)

// Template is implemented by configuration types that know how to fill
// themselves for the first write of config.toml.
//
// FillEmpty sets every field to an explicit empty placeholder for its type, so
// the written file lists each key for the user to complete. FillDefaults sets
// the type's declared default values.
type Template[T any] interface {
	*T
	FillEmpty()
	FillDefaults()
}

// Blank returns a freshly constructed *T filled with defaults when useDefaults
// is set and with empty placeholders otherwise.
func Blank[T any, PT Template[T]](useDefaults bool) *T {
	cfg := new(T)
	if useDefaults {
		PT(cfg).FillDefaults()
	} else {
		PT(cfg).FillEmpty()
	}
	return cfg
}

// FromTemplate returns a zero-argument blank producer for use with WithBlankFn.
func FromTemplate[T any, PT Template[T]](useDefaults bool) func() *T {
	return func() *T { return Blank[T, PT](useDefaults) }
}

// ModelInit is a constructor hook that binds a model.Model[T] to a freshly
// produced blank *T, so `default` struct tags can fill its zero fields before
// the first write.
type ModelInit[T any] func(*T) (*modellib.Model[T], error)

// applyModelDefaults fills zero fields of cfg from `default` tags.
func applyModelDefaults[T any](init ModelInit[T], cfg *T) error {
	mdl, err := init(cfg)
	if err != nil {
		return err
	}
	if mdl == nil {
		return nil
	}
	return mdl.SetDefaults()
}
