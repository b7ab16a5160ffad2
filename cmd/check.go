package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/hellostack/hellostack/internal/config"
	"github.com/hellostack/hellostack/pkg/check"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"
)

func init() {
	checkCmd.Flags().BoolP("json", "j", false, "print check results as JSON")
	checkCmd.Flags().Duration("timeout", check.DefaultTimeout, "maximum time to wait for all checks")
	checkCmd.Flags().Bool("wait", false, "wait until all checks marked with wait = true succeed")

	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check [name...]",
	Short: "Check that the database, backend and other tiers are reachable",
	Long:  "This command runs the checks defined in the configuration directory and exits with status 1 if any of them fails. When names are given, only those checks run.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		handler, err := check.NewHandler(cfg)
		if err != nil {
			return err
		}

		if len(args) > 0 {
			if handler, err = selectChecks(cfg, handler, args); err != nil {
				return err
			}
		}

		timeout, _ := cmd.Flags().GetDuration("timeout")
		handler.SetTimeout(timeout)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if wait, _ := cmd.Flags().GetBool("wait"); wait {
			if err := handler.Wait(ctx, time.Second); err != nil {
				return err
			}
		}

		status := handler.Run(ctx)

		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			body, err := json.MarshalIndent(status, "", "    ")
			if err != nil {
				return errors.Wrap(err, "failed to marshal check results")
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(pretty.Color(body, nil)))
		} else {
			printCheckResults(cmd, status)
		}

		if !status.OK() {
			return exitError{code: 1}
		}
		return nil
	},
}

func printCheckResults(cmd *cobra.Command, status check.StatusResponse) {
	out := cmd.OutOrStdout()

	if len(status.Checks) == 0 {
		fmt.Fprintln(out, styleInfoBox.Render(lipgloss.JoinVertical(
			lipgloss.Left,
			"No checks are configured. Add a check block to a .hcl file in "+styleHighlight.Render(configDir)+", for example:",
			styleCommandBlock.Render(`check "backend" {
  http { url = "https://your-app-name.onrender.com" }
}`),
		)))
		return
	}

	fmt.Fprint(out, "The following tiers have been checked:\n\n")
	for _, line := range renderCheckLines(status) {
		fmt.Fprintln(out, line)
	}
}

// selectChecks returns a handler running only the named checks.
func selectChecks(cfg *config.Hellostack, all *check.Handler, names []string) (*check.Handler, error) {
	selected := &config.Hellostack{}
	for _, name := range names {
		c := cfg.FindCheck(name)
		if c == nil {
			return nil, errors.Errorf("no check named %q is configured (available: %s)", name, strings.Join(all.Names(), ", "))
		}
		selected.Checks = append(selected.Checks, *c)
	}

	return check.NewHandler(selected)
}
