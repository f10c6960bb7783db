package main

import (
	"github.com/rpmbuilder/rpmbuilder/cli/cmd"
)

func main() {
	cmd.Execute()
}
