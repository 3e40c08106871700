package main

import (
	"os"

	"github.com/nextgen-ti/kbportal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
