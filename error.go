package configr

import (
	"errors"
	"fmt"
	"strings"
)

// Exported error categories returned by Load. Each failure wraps exactly one of
// them, so callers can tell failures apart with errors.Is:
//   - ErrPathUnresolvable: no override dir and the OS config dir is unknown,
//     or the home directory in an override could not be determined.
//   - ErrInvalidAppName: the application name yields no usable directory name.
//   - ErrEnsureConfigDir: the parent directories could not be created.
//   - ErrBlank: the blank producer or model defaults failed.
//   - ErrFormat: the blank config could not be encoded as TOML.
//   - ErrWrite: the new config file could not be written.
//   - ErrRead: the config file could not be read.
//   - ErrParse: the file is not valid TOML for the target type (see ParseError).
var (
	ErrEnsureConfigDir = errors.New("ensure config dir")
	ErrBlank           = errors.New("produce blank config")
	ErrFormat          = errors.New("format config")
	ErrWrite           = errors.New("write config file")
	ErrRead            = errors.New("read config file")
	ErrParse           = errors.New("parse config file")
)

// ParseError reports a config file whose contents could not be decoded.
type ParseError struct {
	Path     string // Config file path
	Contents string // Raw file contents
	Line     int    // 1-based; 0 when the codec gave no position
	Column   int    // 1-based; 0 when unknown
	Err      error  // Codec diagnostic
}

func (e *ParseError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", ErrParse, e.Path)
	if e.Line > 0 {
		fmt.Fprintf(&b, ":%d", e.Line)
		if e.Column > 0 {
			fmt.Fprintf(&b, ":%d", e.Column)
		}
	}
	fmt.Fprintf(&b, ": %v", e.Err)
	return b.String()
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrParse }

// Snippet returns the offending line of Contents, or "" when the line is unknown.
func (e *ParseError) Snippet() string {
	if e.Line <= 0 {
		return ""
	}
	lines := strings.Split(e.Contents, "\n")
	if e.Line > len(lines) {
		return ""
	}
	return strings.TrimRight(lines[e.Line-1], "\r")
}

func newParseError(path string, data []byte, err error) *ParseError {
	line, col := errorPosition(err)
	return &ParseError{
		Path:     path,
		Contents: string(data),
		Line:     line,
		Column:   col,
		Err:      err,
	}
}
