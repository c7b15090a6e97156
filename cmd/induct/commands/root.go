package commands

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var verbose bool

// RootCmd is the induct CLI entry point.
var RootCmd = &cobra.Command{
	Use:   "induct",
	Short: "Attribute-oriented induction over in-memory relations",
	Long: `induct climbs concept hierarchies to produce compact generalized
relations annotated with merge counts and aggregates.

The CLI demonstrates the engine on a built-in customer sample; host
applications embed the engine directly (see package induct).`,
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Execute runs the root command.
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log engine progress")
	RootCmd.AddCommand(RunCmd)
	RootCmd.AddCommand(VersionCmd)
}

// newLogger builds the engine logger: a development zap logger when
// --verbose is set, otherwise silent.
func newLogger() *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
