//go:build mage
// +build mage

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/magefile/mage/sh"
)

const (
	goPackageName = "github.com/rpmbuilder/rpmbuilder/cli"

	packagePath = "./cli"

	executableName = "rpmbuilder"
)

var ldflags = []string{
	"-X ${PACKAGE}/version.gitTag=${GIT_TAG}",
	"-X ${PACKAGE}/version.gitCommit=${GIT_COMMIT}",
}

var goExecutableName = "go"

func init() {
	if specifiedGoExe := os.Getenv("GOEXE"); specifiedGoExe != "" {
		goExecutableName = specifiedGoExe
	}
}

// getBuildEnv returns the environment for expanding ldflags.
func getBuildEnv() map[string]string {
	gitTag, _ := sh.Output("git", "describe", "--tags")
	gitCommit, _ := sh.Output("git", "rev-parse", "--short", "HEAD")

	return map[string]string{
		"PACKAGE":    goPackageName,
		"GIT_TAG":    gitTag,
		"GIT_COMMIT": gitCommit,
	}
}

// Build builds the rpmbuilder executable.
func Build() error {
	fmt.Println("Building rpmbuilder...")

	return sh.RunWith(getBuildEnv(), goExecutableName, "build",
		"-ldflags", strings.Join(ldflags, " "),
		"-o", executableName,
		packagePath,
	)
}

// Unit runs unit tests.
func Unit() error {
	fmt.Println("Running unit tests...")

	return sh.RunV(goExecutableName, "test", "./cli/...")
}

// Lint runs golangci-lint.
func Lint() error {
	fmt.Println("Running golangci-lint...")

	return sh.RunV("golangci-lint", "run", "./cli/...")
}
