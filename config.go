package configr

import (
	"fmt"
	"os"
	"strings"

	"github.com/ygrebnov/configr/streams"
)

// Loader resolves, bootstraps and decodes the config.toml of one application
// into a *T.
//
// Every call to Load runs the full sequence below; nothing is cached between
// calls:
//  1. Resolve the path from the application name and the override directory
//     (WithDir, then WithDirEnv), or the OS user config directory.
//  2. Create the parent directories if they are missing.
//  3. If config.toml does not exist, build a blank *T with the producer set by
//     WithBlankFn (or WithTemplate), apply WithModel defaults in defaults mode,
//     encode it and publish it without ever replacing an existing file.
//  4. Read config.toml and decode it into a new *T.
type Loader[T any] struct {
	appName     string
	dir         string
	dirEnv      string
	useDefaults bool
	blankFn     func() *T
	modelInit   ModelInit[T]
	codec       Codec
	strict      bool
	streams     streams.IOStreams
}

// Option configures a Loader at construction time.
type Option[T any] func(*Loader[T])

// New constructs a Loader for appName. An unusable appName is reported by Load
// as ErrInvalidAppName. Without WithBlankFn or WithTemplate the
// first write uses the zero value of T.
func New[T any](appName string, opts ...Option[T]) *Loader[T] {
	l := &Loader[T]{appName: appName}
	for _, opt := range opts {
		opt(l)
	}

	if l.blankFn == nil {
		l.blankFn = func() *T { return new(T) }
	}
	if l.codec == nil {
		l.codec = GoTOML{}
	}
	if sc, ok := l.codec.(StrictCodec); ok && l.strict {
		l.codec = sc.WithStrict()
	}

	return l
}

// WithDir sets the base directory used instead of the OS user config directory.
// A leading "~", "$HOME" or "${HOME}" is expanded to the user's home directory.
// Panics if dir is empty.
func WithDir[T any](dir string) Option[T] {
	return func(l *Loader[T]) {
		if strings.TrimSpace(dir) == "" {
			panic("configr: WithDir: dir cannot be empty")
		}
		l.dir = dir
	}
}

// WithDirEnv names an environment variable whose value, when set and non-empty,
// is used as the base directory. WithDir takes precedence. Panics if name is empty.
func WithDirEnv[T any](name string) Option[T] {
	return func(l *Loader[T]) {
		if name == "" {
			panic("configr: WithDirEnv: name cannot be empty")
		}
		l.dirEnv = name
	}
}

// WithBlankFn registers the producer of the value written on first run.
// Panics if fn is nil.
func WithBlankFn[T any](fn func() *T) Option[T] {
	return func(l *Loader[T]) {
		if fn == nil {
			panic("configr: WithBlankFn: fn cannot be nil")
		}
		l.blankFn = fn
	}
}

// WithDefaults marks the blank producer as producing default values rather than
// empty placeholders. It only affects whether WithModel defaults are applied.
func WithDefaults[T any](useDefaults bool) Option[T] {
	return func(l *Loader[T]) {
		l.useDefaults = useDefaults
	}
}

// WithTemplate uses T's Template methods as the blank producer, filling
// defaults when useDefaults is set and empty placeholders otherwise.
func WithTemplate[T any, PT Template[T]](useDefaults bool) Option[T] {
	return func(l *Loader[T]) {
		l.useDefaults = useDefaults
		l.blankFn = FromTemplate[T, PT](useDefaults)
	}
}

// WithModel enables `default` struct tags from github.com/ygrebnov/model.
// In defaults mode the init function is called with each freshly produced
// blank *T and SetDefaults fills its remaining zero fields before the first
// write. Panics if init is nil.
func WithModel[T any](init ModelInit[T]) Option[T] {
	return func(l *Loader[T]) {
		if init == nil {
			panic("configr: WithModel: init cannot be nil")
		}
		l.modelInit = init
	}
}

// WithCodec replaces the default go-toml codec. WithStrict only affects codecs
// that implement StrictCodec; others are used as given. Panics if c is nil.
func WithCodec[T any](c Codec) Option[T] {
	return func(l *Loader[T]) {
		if c == nil {
			panic("configr: WithCodec: codec cannot be nil")
		}
		l.codec = c
	}
}

// WithStrict makes keys that do not map to a field of T a parse error.
// It applies to codecs implementing StrictCodec, which includes both built-in
// codecs; any other codec is left unchanged.
func WithStrict[T any]() Option[T] {
	return func(l *Loader[T]) {
		l.strict = true
	}
}

// WithStreams wires the notification outputs ("created new config at",
// "loaded from" and warnings). See the streams package for adapters.
func WithStreams[T any](s streams.IOStreams) Option[T] {
	return func(l *Loader[T]) {
		l.streams = s
	}
}

// Path resolves the config file path without touching the filesystem.
func (l *Loader[T]) Path() (string, error) {
	dir := l.dir
	if dir == "" && l.dirEnv != "" {
		dir = os.Getenv(l.dirEnv)
	}
	return ResolvePath(l.appName, dir)
}

// Load returns the decoded configuration, the path it was read from and
// whether this call created the file. On error no configuration is returned.
func (l *Loader[T]) Load() (cfg *T, path string, created bool, err error) {
	path, err = l.Path()
	if err != nil {
		return nil, "", false, err
	}

	if err := EnsurePath(path); err != nil {
		return nil, path, false, err
	}

	found, err := exists(path)
	if err != nil {
		return nil, path, false, err
	}
	if !found {
		created, err = l.bootstrap(path)
		if err != nil {
			return nil, path, false, err
		}
	}

	data, err := readFile(path)
	if err != nil {
		return nil, path, created, err
	}

	cfg = new(T)
	if err := l.codec.Unmarshal(data, cfg); err != nil {
		return nil, path, created, newParseError(path, data, err)
	}

	if created {
		l.notify("configr: created new config at %s\n", path)
	} else {
		l.notify("configr: loaded from %s\n", path)
	}
	return cfg, path, created, nil
}

func (l *Loader[T]) bootstrap(path string) (bool, error) {
	blank := l.blankFn()
	if blank == nil {
		return false, fmt.Errorf("%w: producer returned nil", ErrBlank)
	}
	if l.useDefaults && l.modelInit != nil {
		if err := applyModelDefaults(l.modelInit, blank); err != nil {
			return false, fmt.Errorf("%w: %w", ErrBlank, err)
		}
	}

	data, err := encode(l.codec, blank)
	if err != nil {
		return false, err
	}

	created, err := createExclusive(path, data)
	if err != nil {
		return false, err
	}
	if !created {
		l.warn("configr: %s appeared while bootstrapping; keeping existing file\n", path)
	}
	return created, nil
}

func (l *Loader[T]) notify(format string, args ...any) {
	if l.streams != nil && l.streams.Out() != nil {
		fmt.Fprintf(l.streams.Out(), format, args...)
	}
}

func (l *Loader[T]) warn(format string, args ...any) {
	if l.streams != nil && l.streams.ErrOut() != nil {
		fmt.Fprintf(l.streams.ErrOut(), format, args...)
	}
}

// Load reads the config.toml of appName from the OS user config directory,
// creating it on first run with T's defaults (useDefaults) or empty
// placeholders.
func Load[T any, PT Template[T]](appName string, useDefaults bool) (*T, error) {
	cfg, _, _, err := New(appName, WithTemplate[T, PT](useDefaults)).Load()
	return cfg, err
}

// LoadWithDir is Load with dir used as the base directory instead of the OS
// user config directory. dir may start with "~", "$HOME" or "${HOME}".
func LoadWithDir[T any, PT Template[T]](appName, dir string, useDefaults bool) (*T, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("%w: empty directory override", ErrPathUnresolvable)
	}
	cfg, _, _, err := New(appName, WithDir[T](dir), WithTemplate[T, PT](useDefaults)).Load()
	return cfg, err
}
