// Package wren keeps an editor extension's package.json in sync with the
// option table published in the dfmt README.
package wren

// Version is the current wren release.
const Version = "0.1.0"
