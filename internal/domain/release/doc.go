// Package release contains the Release type: a published version tag and
// the asset locations derived from it.
package release
