//go:build tools

package tools

// This file tracks versions of CLI tool dependencies.
// It is not compiled into the binary.
//
// Tools used during development:
// - github.com/99designs/gqlgen (schema codegen, invoked via go:generate)
// - github.com/matryer/moq (interface mocks for resolver tests)
