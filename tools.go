//go:build tools

package tools

// This file tracks versions of CLI tool dependencies.
// It is not compiled into the binary.
//
// Tools (pinned through the tool directive in go.mod):
// - github.com/matryer/moq (collaborator mocks in *_mock_test.go)
// - github.com/pressly/goose/v3/cmd/goose (manual migration runs)
