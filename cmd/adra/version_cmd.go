package main

import (
	"fmt"
	"io"

	"github.com/adra-labs/adra/pkg/engine"
)

func runVersionCmd(stdout io.Writer) int {
	_, _ = fmt.Fprintf(stdout, "adra engine %s\n", engine.Version)
	return 0
}
