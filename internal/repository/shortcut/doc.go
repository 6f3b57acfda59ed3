// Package shortcut renders, parses and persists the desktop entry that makes
// the launcher show up in application menus.
//
// FileRepository writes the entry as key/value text under a [Desktop Entry]
// group and reads it back for the reinstall notice.
package shortcut
