package main

import (
	"os"

	"github.com/cedarbuild/cedar/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
