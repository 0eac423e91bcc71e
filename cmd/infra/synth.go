package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/collin-smith/CdkApp/internal/infra"
)

func newSynthCmd(v *viper.Viper) *cobra.Command {
	var bucketSuffix int
	var outputFile string

	cmd := &cobra.Command{
		Use:   "synth",
		Short: "Print the stack declaration",
		Long: `Build the stack declaration for an environment and print it as YAML.

Examples:
  infra synth -e PRD -r us-east-1                  # random bucket suffix
  infra synth -e PRD -r us-east-1 --bucket-suffix 42
  infra synth -e DEV -r us-west-2 -f stack.yaml    # write to file`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stack, err := infra.NewStack(infra.Options{
				Environment:  v.GetString("ENVIRONMENT"),
				Region:       v.GetString("REGION"),
				BucketSuffix: bucketSuffix,
			})
			if err != nil {
				return err
			}

			data, err := infra.Render(stack)
			if err != nil {
				return err
			}

			if outputFile == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(outputFile, data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", outputFile, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", outputFile)
			return nil
		},
	}

	cmd.Flags().IntVar(&bucketSuffix, "bucket-suffix", -1, "numeric bucket name suffix (negative picks a random one)")
	cmd.Flags().StringVarP(&outputFile, "file", "f", "", "write YAML to file instead of stdout")

	return cmd
}
