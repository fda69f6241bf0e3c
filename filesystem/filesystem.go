// Package filesystem holds the afero backend every other package reads and writes through.
//
// Tests swap it for an in-memory filesystem with SetMemMapFs.
package filesystem

import "github.com/spf13/afero"

var backend = afero.Afero{Fs: afero.NewOsFs()}

// API returns the active afero.Afero instance for filesystem interaction.
func API() afero.Afero {
	return backend
}

// SetOsFs restores the native operating system backend.
func SetOsFs() {
	backend = afero.Afero{Fs: afero.NewOsFs()}
}

// SetMemMapFs switches to a volatile in-memory backend.
func SetMemMapFs() {
	backend = afero.Afero{Fs: afero.NewMemMapFs()}
}

// SetReadOnly wraps the current backend so that writes fail.
// dotplay inspect uses it to guarantee it never touches the disk.
func SetReadOnly() {
	backend = afero.Afero{Fs: afero.NewReadOnlyFs(backend.Fs)}
}
