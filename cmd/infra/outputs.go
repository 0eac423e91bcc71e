package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/collin-smith/CdkApp/internal/infra"
)

func newOutputsCmd(v *viper.Viper) *cobra.Command {
	var stackFile string
	var apiURL string
	var apiID string

	cmd := &cobra.Command{
		Use:   "outputs",
		Short: "Print the deployment outputs",
		Long: `Print the lettered outputs (region, bucket, table, API and route URLs)
for a stack declaration written by synth.

Pass either the full invoke URL with --api-url or the REST API id with --api-id.

Examples:
  infra outputs -f stack.yaml --api-id abc123
  infra outputs -f stack.yaml --api-url https://abc123.execute-api.us-east-1.amazonaws.com/PRD/`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if stackFile == "" {
				return fmt.Errorf("--file is required")
			}
			stack, err := infra.Load(stackFile)
			if err != nil {
				return err
			}
			if env := v.GetString("ENVIRONMENT"); env != "" && env != stack.Environment {
				return fmt.Errorf("stack %s was declared for environment %s, not %s", stackFile, stack.Environment, env)
			}

			switch {
			case apiURL != "":
			case apiID != "":
				apiURL = stack.APIURL(apiID)
			default:
				return fmt.Errorf("one of --api-url or --api-id is required")
			}

			out := cmd.OutOrStdout()
			for _, o := range stack.ResolveOutputs(apiURL) {
				fmt.Fprintf(out, "%s: %s\n", o.Name, o.Value)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&stackFile, "file", "f", "", "stack YAML written by synth")
	cmd.Flags().StringVar(&apiURL, "api-url", "", "deployed API invoke URL")
	cmd.Flags().StringVar(&apiID, "api-id", "", "deployed REST API id")

	return cmd
}
