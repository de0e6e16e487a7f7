package configr

import (
	"errors"
	"os"
	"strings"
	"testing"

	modellib "github.com/ygrebnov/model"
)

func TestBlank(t *testing.T) {
	if got := Blank[botConfig](false); *got != (botConfig{}) {
		t.Fatalf("Blank(false) = %+v, want zero value", *got)
	}
	if got := Blank[botConfig](true); *got != defaultBot() {
		t.Fatalf("Blank(true) = %+v, want defaults", *got)
	}
}

func TestFromTemplate_FreshValues(t *testing.T) {
	fn := FromTemplate[botConfig](true)
	a, b := fn(), fn()
	if a == b {
		t.Fatalf("producer returned the same pointer twice")
	}
	a.Port = 1
	if b.Port != 8080 {
		t.Fatalf("values share state: b.Port = %d", b.Port)
	}
}

// taggedCfg declares its defaults with struct tags instead of FillDefaults.
type taggedCfg struct {
	Name string `toml:"name" default:"svc"`
	Port int    `toml:"port" default:"8080"`
}

func taggedModel(c *taggedCfg) (*modellib.Model[taggedCfg], error) {
	return modellib.New(
		c,
		modellib.WithRules[taggedCfg, string](modellib.BuiltinStringRules()),
		modellib.WithRules[taggedCfg, int](modellib.BuiltinIntRules()),
	)
}

func TestLoader_WithModel(t *testing.T) {
	tests := []struct {
		name        string
		useDefaults bool
		blank       func() *taggedCfg
		want        taggedCfg
	}{
		{
			name:        "defaults mode fills zero fields from tags",
			useDefaults: true,
			blank:       func() *taggedCfg { return &taggedCfg{} },
			want:        taggedCfg{Name: "svc", Port: 8080},
		},
		{
			name:        "producer values win over tags",
			useDefaults: true,
			blank:       func() *taggedCfg { return &taggedCfg{Name: "custom"} },
			want:        taggedCfg{Name: "custom", Port: 8080},
		},
		{
			name:        "empty mode ignores tags",
			useDefaults: false,
			blank:       func() *taggedCfg { return &taggedCfg{} },
			want:        taggedCfg{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, path, created, err := New("tagged",
				WithDir[taggedCfg](t.TempDir()),
				WithBlankFn(tt.blank),
				WithDefaults[taggedCfg](tt.useDefaults),
				WithModel[taggedCfg](taggedModel),
			).Load()
			if err != nil {
				t.Fatalf("Load returned error: %v", err)
			}
			if !created {
				t.Fatalf("created = false, want true")
			}
			if *cfg != tt.want {
				t.Fatalf("cfg = %+v, want %+v", *cfg, tt.want)
			}

			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("ReadFile: %v", err)
			}
			if !strings.Contains(string(data), "name = '"+tt.want.Name+"'") {
				t.Fatalf("file does not hold name %q:\n%s", tt.want.Name, data)
			}
		})
	}
}

func TestLoader_WithModelInitError(t *testing.T) {
	boom := errors.New("boom")
	_, _, _, err := New("tagged",
		WithDir[taggedCfg](t.TempDir()),
		WithDefaults[taggedCfg](true),
		WithModel[taggedCfg](func(*taggedCfg) (*modellib.Model[taggedCfg], error) { return nil, boom }),
	).Load()
	if !errors.Is(err, ErrBlank) || !errors.Is(err, boom) {
		t.Fatalf("Load error = %v, want ErrBlank wrapping boom", err)
	}
}
