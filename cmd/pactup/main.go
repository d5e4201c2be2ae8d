package main

import (
	"fmt"
	"os"

	"github.com/kadena-community/pactup/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "pactup: "+err.Error())
		os.Exit(1)
	}
}
