// cmd/datestamp/main.go
package main

import (
	"github.com/bstardust/datestamp/internal/logger"
	"github.com/bstardust/datestamp/pkg/cli"
)

func main() {
	// Initialize logger
	logger.Init()
	defer logger.Sync()

	// Execute CLI
	cli.Execute()
}
