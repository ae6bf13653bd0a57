//go:build tools

package tools

// This file tracks versions of CLI tool dependencies.
// It is not compiled into the binary.
//
// Tools used by this module:
// - github.com/matryer/moq (mock generation, see //go:generate directives)
// - github.com/pressly/goose/v3/cmd/goose (migrations, declared in go.mod tool block)
