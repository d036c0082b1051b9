// Command synapse runs the neural network background live in a terminal,
// renders it to images, and inspects generated topologies.
package main

import (
	"os"
)

func main() {
	a := &app{}
	if err := a.execute(newRootCmd(a)); err != nil {
		os.Exit(1)
	}
}
