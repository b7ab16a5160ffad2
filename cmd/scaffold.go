package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/hellostack/hellostack/pkg/files"
	"github.com/hellostack/hellostack/pkg/tutorial"
	"github.com/spf13/cobra"
)

func init() {
	scaffoldCmd.Flags().StringP("target", "t", "", "directory to write the backend project to (default \"./<project-name>\")")
	scaffoldCmd.Flags().Bool("overwrite", false, "overwrite existing files")
	scaffoldCmd.Flags().String("project-name", tutorial.DefaultData().ProjectName, "name of the backend project")
	scaffoldCmd.Flags().String("message", tutorial.DefaultData().Message, "message stored in the database")

	rootCmd.AddCommand(scaffoldCmd)
}

var scaffoldCmd = &cobra.Command{
	Use:   "scaffold",
	Short: "Write the backend project and SQL scripts of the guide to disk",
	Long:  "This command writes package.json, index.js and the SQL scripts shown in the guide into a directory.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		data := tutorial.DefaultData()
		data.BackendURL = cfg.InitialEndpoint("")
		data.ProjectName, _ = cmd.Flags().GetString("project-name")
		data.Message, _ = cmd.Flags().GetString("message")

		target, _ := cmd.Flags().GetString("target")
		overwrite, _ := cmd.Flags().GetBool("overwrite")
		if cfg.Scaffold != nil {
			if target == "" {
				target = cfg.Scaffold.Target
			}
			if !cmd.Flags().Changed("overwrite") {
				overwrite = cfg.Scaffold.Overwrite
			}
		}
		if target == "" {
			target = data.ProjectName
		}

		if err := files.RenderFiles(files.BackendFiles(target, overwrite), data); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), styleSuccessBox.Render(lipgloss.JoinVertical(
			lipgloss.Left,
			"🚀 backend project written to "+styleHighlight.Render(target),
			"Continue with step 2 of the guide:",
			styleCommandBlock.Render(styleCommand.Render(cmd.Root().CommandPath()+" guide")+styleParam.Render(" --step 2")),
		)))

		return nil
	},
}
