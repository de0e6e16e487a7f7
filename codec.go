package configr

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"

	burntsushi "github.com/BurntSushi/toml"
	gotoml "github.com/pelletier/go-toml/v2"
)

// Codec converts configuration values to and from TOML documents.
type Codec interface {
	Name() string
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// StrictCodec is implemented by codecs that can reject keys which do not map
// to a field of the target type. WithStrict uses it to switch a codec over.
type StrictCodec interface {
	Codec
	WithStrict() Codec
}

// GoTOML is the default Codec, backed by github.com/pelletier/go-toml/v2.
// With Strict set, keys that do not map to a struct field fail decoding.
type GoTOML struct {
	Strict bool
}

func (GoTOML) Name() string { return "go-toml" }

func (c GoTOML) WithStrict() Codec {
	c.Strict = true
	return c
}

func (GoTOML) Marshal(v any) ([]byte, error) {
	return gotoml.Marshal(v)
}

func (c GoTOML) Unmarshal(data []byte, v any) error {
	dec := gotoml.NewDecoder(bytes.NewReader(data))
	if c.Strict {
		dec.DisallowUnknownFields()
	}
	return dec.Decode(v)
}

// BurntSushi is a Codec backed by github.com/BurntSushi/toml.
// With Strict set, undecoded keys are reported as an error.
type BurntSushi struct {
	Strict bool
}

func (BurntSushi) Name() string { return "burntsushi" }

func (c BurntSushi) WithStrict() Codec {
	c.Strict = true
	return c
}

func (BurntSushi) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := burntsushi.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c BurntSushi) Unmarshal(data []byte, v any) error {
	md, err := burntsushi.Decode(string(data), v)
	if err != nil {
		return err
	}
	if !c.Strict {
		return nil
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

// errorPosition extracts the 1-based line and column of a decode failure from
// the error types of the supported TOML libraries. Zero means unknown.
func errorPosition(err error) (line, col int) {
	var goErr *gotoml.DecodeError
	if errors.As(err, &goErr) {
		return goErr.Position()
	}
	var strictErr *gotoml.StrictMissingError
	if errors.As(err, &strictErr) && len(strictErr.Errors) > 0 {
		return strictErr.Errors[0].Position()
	}
	var bsErr burntsushi.ParseError
	if errors.As(err, &bsErr) {
		return bsErr.Position.Line, 0
	}
	return 0, 0
}
