package configr

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FileName is the name of the configuration file inside the application directory.
const FileName = "config.toml"

var (
	ErrPathUnresolvable = errors.New("resolve config path")
	ErrInvalidAppName   = errors.New("invalid application name")
)

var lower = cases.Lower(language.Und)

// Slug converts an application name into the directory name used under the
// config root: the name is lowercased and every whitespace character becomes a
// hyphen, so "Bot App" becomes "bot-app" and "bot  app" becomes "bot--app".
//
// Names that are blank, "." or "..", or that contain a path separator, are
// rejected with ErrInvalidAppName rather than nesting or escaping directories.
func Slug(appName string) (string, error) {
	if strings.TrimSpace(appName) == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidAppName, appName)
	}
	slug := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '-'
		}
		return r
	}, lower.String(appName))
	switch {
	case slug == ".", slug == "..":
		return "", fmt.Errorf("%w: %q", ErrInvalidAppName, appName)
	case strings.ContainsAny(slug, `/\`) || strings.ContainsRune(slug, filepath.Separator):
		return "", fmt.Errorf("%w: %q contains a path separator", ErrInvalidAppName, appName)
	}
	return slug, nil
}

// ResolvePath returns the absolute path of the application's config.toml.
//
// When dir is non-empty it is used as the base directory: a leading "~", "$HOME"
// or "${HOME}" is replaced with the user's home directory and other ${VAR}
// references to set variables are substituted. The OS config directory is not
// consulted in that case. When dir is empty, os.UserConfigDir supplies the base
// (XDG_CONFIG_HOME or ~/.config on Linux, %AppData% on Windows,
// ~/Library/Application Support on macOS).
func ResolvePath(appName, dir string) (string, error) {
	slug, err := Slug(appName)
	if err != nil {
		return "", err
	}

	base, err := baseDir(dir)
	if err != nil {
		return "", err
	}
	return filepath.Join(base, slug, FileName), nil
}

func baseDir(dir string) (string, error) {
	if strings.TrimSpace(dir) == "" {
		userConfigDir, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("%w: cannot determine user config dir: %w", ErrPathUnresolvable, err)
		}
		return userConfigDir, nil
	}

	expanded, err := expandDir(dir)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrPathUnresolvable, err)
	}
	return expanded, nil
}

// homeTokens are recognized only at the start of an override directory and only
// when followed by a separator or the end of the string.
var homeTokens = []string{"${HOME}", "$HOME", "~"}

func expandDir(dir string) (string, error) {
	trimmed := strings.TrimSpace(dir)
	for _, token := range homeTokens {
		rest, ok := strings.CutPrefix(trimmed, token)
		if !ok || (rest != "" && !isSeparator(rest[0])) {
			continue
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = home + rest
		break
	}

	return filepath.Abs(substituteEnvVars(trimmed))
}

// envVarPattern matches ${VAR_NAME}; bare $VAR and unterminated ${ are not references.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// substituteEnvVars replaces ${VAR_NAME} with set environment variable values
// and leaves everything else, including unset references, as written.
func substituteEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		if v, ok := os.LookupEnv(match[2 : len(match)-1]); ok {
			return v
		}
		return match
	})
}

func isSeparator(c byte) bool {
	return c == '/' || os.IsPathSeparator(c)
}
