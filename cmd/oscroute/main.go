// Command oscroute sends and receives OSC messages routed through a typed
// message tree.
package main

import (
	"fmt"
	"os"

	"github.com/chabad360/oscaddress/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
