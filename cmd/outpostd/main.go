// Command outpostd runs the flight software core: a software bus, parameter
// aggregators, and a data processor thread wired together by the
// composition root in internal/supervisor.
package main

import (
	"fmt"
	"os"

	"github.com/outpost-go/flightcore/cmd/outpostd/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
