// Package config holds the installer settings: where releases come from,
// how long HTTP calls may take and which home directory to install into.
//
// Default returns the fixed values the installer ships with. Load overlays a
// YAML file on top of them, and Paths derives every filesystem location the
// installer writes to.
package config
