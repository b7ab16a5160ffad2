package cmd

import (
	"fmt"

	"github.com/hellostack/hellostack/pkg/tutorial"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func init() {
	guideCmd.Flags().IntP("step", "s", 0, "only show the given step (1-based)")

	rootCmd.AddCommand(guideCmd)
}

var guideCmd = &cobra.Command{
	Use:   "guide",
	Short: "Show the step-by-step deployment guide",
	Long:  "This command prints the guide for deploying the database, backend and frontend of your first full-stack application.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		data := tutorial.DefaultData()
		data.BackendURL = cfg.InitialEndpoint("")

		steps, err := tutorial.Render(data)
		if err != nil {
			return err
		}

		only, _ := cmd.Flags().GetInt("step")
		if only < 0 || only > len(steps) {
			return errors.Errorf("step must be between 1 and %d", len(steps))
		}

		out := cmd.OutOrStdout()
		for i, step := range steps {
			if only != 0 && only != i+1 {
				continue
			}
			fmt.Fprintln(out, renderStep(i+1, step))
		}

		if only == 0 || only == len(steps) {
			fmt.Fprintln(out, styleInfoBox.Render(
				"Test your connection with "+styleCommand.Render(cmd.Root().CommandPath()+" probe")+styleParam.Render(" <backend-url>"),
			))
		}

		return nil
	},
}
