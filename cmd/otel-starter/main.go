// Package main is the entry point for the otel-starter CLI.
package main

import (
	"os"

	"github.com/grafana/otel-starter-go/cmd/otel-starter/app"
	"github.com/grafana/otel-starter-go/pkg/logger"
)

func main() {
	// Initialize the logger
	logger.Initialize()

	if err := app.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
