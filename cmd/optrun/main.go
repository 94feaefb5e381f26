// Package main enables optrun to execute as a CLI tool
package main

import (
	"os"

	"github.com/pouriyajamshidi/optrun/internal/app"
)

func main() {
	os.Exit(app.Run())
}
