// Package common holds the HTTP client shared by the installer steps.
//
// Client talks to the release API and fetches release assets, one request per
// call, with a per-request timeout and the installer User-Agent.
//
//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common
