// The main package for the endpointscan executable.
package main

import (
	"github.com/uatoolkit/endpointscan/cmd"
)

// main is the entry point of the application.
// It defers all execution to the Cobra CLI library.
func main() {
	cmd.Execute()
}
