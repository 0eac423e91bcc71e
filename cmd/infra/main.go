package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	v := viper.New()
	v.AutomaticEnv()

	rootCmd := &cobra.Command{
		Use:   "infra",
		Short: "Declare the CdkApp stack",
		Long: `Declare the CdkApp stack: one bucket, one table, four functions and a REST API.

Commands:
  infra synth              Print the stack declaration as YAML
  infra outputs            Print the lettered outputs for a deployed stack`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringP("environment", "e", "", "deployment environment (default $ENVIRONMENT)")
	_ = v.BindPFlag("ENVIRONMENT", rootCmd.PersistentFlags().Lookup("environment"))

	rootCmd.PersistentFlags().StringP("region", "r", "", "AWS region (default $REGION)")
	_ = v.BindPFlag("REGION", rootCmd.PersistentFlags().Lookup("region"))

	rootCmd.AddCommand(newSynthCmd(v))
	rootCmd.AddCommand(newOutputsCmd(v))

	return rootCmd.ExecuteContext(context.Background())
}
