package cmd

import (
	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/spf13/cobra"
)

// NewCmdRoot creates a new root command.
func NewCmdRoot() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rpmbuilder",
		Short: "Declarative rpm package builder",
		Long: "Utility for building binary rpm packages from plain files, " +
			"without spec files or a build root",
		Example: `$ rpmbuilder build myapp --version 1.2.3 \
      --exec-file target/myapp:/usr/bin/myapp`,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	rootCmd.AddCommand(
		NewBuildCmd(),
		NewVersionCmd(),
	)

	rootCmd.InitDefaultHelpCmd()

	log.SetHandler(cli.Default)

	return rootCmd
}

// Execute root command.
func Execute() {
	if err := NewCmdRoot().Execute(); err != nil {
		log.Fatalf(err.Error())
	}
}
