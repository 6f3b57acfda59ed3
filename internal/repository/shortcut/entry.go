package shortcut

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/ini.v1"
)

// group is the only section the installer reads and writes.
const group = "Desktop Entry"

// versionKey records the installed release in the descriptor.
const versionKey = "X-Pandora-Version"

// reservedExecChars force quoting of an Exec argument.
const reservedExecChars = " \t\n\"'\\><~|&;$*?#()`"

// ErrMalformed is returned for text that is not a desktop entry.
var ErrMalformed = errors.New("malformed desktop entry")

func init() { //nolint:gochecknoinits // Desktop entries must be written as key=value.
	ini.PrettyFormat = false
}

// loadOptions keep ';' lists such as "Categories=Game;" and quoted Exec values intact.
//
//nolint:exhaustruct // Defaults are fine for the rest.
func loadOptions() ini.LoadOptions {
	return ini.LoadOptions{
		IgnoreInlineComment:     true,
		PreserveSurroundedQuote: true,
	}
}

// Entry is the shortcut descriptor of the installed launcher.
type Entry struct {
	// Name is the menu label.
	Name string
	// Exec is the absolute path of the launcher binary.
	Exec string
	// Icon is the absolute path of the icon file.
	Icon string
	// Release is the installed release tag.
	Release string
}

// keys lists the descriptor fields in write order.
func (e *Entry) keys() [][2]string {
	return [][2]string{
		{"Version", "1.0"},
		{"Type", "Application"},
		{"Name", e.Name},
		{"TryExec", e.Exec},
		{"StartupNotify", "true"},
		{"Exec", quoteExec(e.Exec)},
		{"Icon", e.Icon},
		{"Categories", "Game;"},
		{"Keywords", "minecraft;launcher;"},
		{versionKey, e.Release},
	}
}

// Render writes the descriptor text.
func (e *Entry) Render(w io.Writer) error {
	file := ini.Empty(loadOptions())

	section, err := file.NewSection(group)
	if err != nil {
		return err
	}

	for _, kv := range e.keys() {
		if _, err = section.NewKey(kv[0], kv[1]); err != nil {
			return fmt.Errorf("key %s: %w", kv[0], err)
		}
	}

	_, err = file.WriteTo(w)

	return err
}

// Parse reads a descriptor and returns the keys of its [Desktop Entry] group.
// Keys of other groups are skipped; keys before any group are rejected.
func Parse(r io.Reader) (map[string]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read desktop entry: %w", err)
	}

	file, err := ini.LoadSources(loadOptions(), data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	if len(file.Section(ini.DefaultSection).Keys()) > 0 {
		return nil, fmt.Errorf("key before [%s]: %w", group, ErrMalformed)
	}

	section, err := file.GetSection(group)
	if err != nil {
		return nil, fmt.Errorf("no [%s] group: %w", group, ErrMalformed)
	}

	values := section.KeysHash()
	if len(values) == 0 {
		return nil, fmt.Errorf("empty [%s] group: %w", group, ErrMalformed)
	}

	return values, nil
}

// quoteExec quotes path when it contains characters the Exec key reserves.
func quoteExec(path string) string {
	if !strings.ContainsAny(path, reservedExecChars) {
		return path
	}

	var b strings.Builder

	b.WriteByte('"')

	for _, r := range path {
		if strings.ContainsRune("\"`$\\", r) {
			b.WriteByte('\\')
		}

		b.WriteRune(r)
	}

	b.WriteByte('"')

	return b.String()
}

// unquoteExec reverses quoteExec.
func unquoteExec(value string) string {
	if len(value) < 2 || value[0] != '"' || value[len(value)-1] != '"' {
		return value
	}

	var (
		b       strings.Builder
		escaped bool
	)

	for _, r := range value[1 : len(value)-1] {
		if r == '\\' && !escaped {
			escaped = true
			continue
		}

		escaped = false

		b.WriteRune(r)
	}

	return b.String()
}
