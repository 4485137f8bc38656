// Command arrango reads one scheduling request from stdin and writes one
// solved (or failed) result to stdout.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/smeggmann99/arrango-scheduler/app"
	"github.com/smeggmann99/arrango-scheduler/pkg/config"
	"github.com/smeggmann99/arrango-scheduler/pkg/logger"
)

var (
	debugFlag bool

	// version is set at build time via -ldflags.
	version = "dev"
)

func main() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(app.ExitCrash)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "arrango",
		Short:         "Solve a school timetable from a JSON request on stdin",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if debugFlag {
				cfg.ForceDebug = true
			}
			logger.Setup(cfg.ForceDebug || cfg.LogLevel == "debug")

			opts := app.Options{
				ForceDebug: debugFlag,
				Config:     cfg,
				Logger:     logger.With(),
			}
			exitCode := app.Run(context.Background(), os.Stdin, os.Stdout, opts)
			if exitCode != app.ExitOK {
				os.Exit(exitCode)
			}
			return nil
		},
	}
	root.PersistentFlags().BoolVar(&debugFlag, "debug", false, "force debug mode, overriding the request body and environment")
	root.AddCommand(newVersionCommand())
	return root
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), version)
			return nil
		},
	}
}
