//go:build tools

package main

// Pins build tooling so task and lint versions travel with the module.
import (
	_ "github.com/go-task/task/v3/cmd/task"
	_ "github.com/golangci/golangci-lint/v2/cmd/golangci-lint"
)
