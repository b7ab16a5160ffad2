package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hellostack/hellostack/pkg/cli"
	"github.com/hellostack/hellostack/pkg/probe"
	"github.com/spf13/cobra"
)

var apiAddress string

func init() {
	remoteCmd.PersistentFlags().StringVarP(&apiAddress, "api-address", "", DefaultAPIAddress, "address of a running `hellostack serve`; use unix:///path/to/socket for a unix socket")
	remoteCmd.PersistentFlags().BoolP("json", "j", false, "print responses as JSON")

	remoteSubmitCmd.Flags().BoolP("wait", "w", true, "wait for the probe to complete")

	remoteCmd.AddCommand(remoteStatusCmd, remoteEndpointCmd, remoteSubmitCmd, remoteWatchCmd, remoteChecksCmd, remoteStepsCmd)
	rootCmd.AddCommand(remoteCmd)
}

var remoteCmd = &cobra.Command{
	Use:   "remote",
	Short: "Control a running hellostack server",
	Long:  "This command can be used to control the connection test of a running `hellostack serve` from the command line.",
}

var remoteStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current state of the connection test",
	RunE: func(cmd *cobra.Command, args []string) error {
		resp := cli.NewAPIClient(apiAddress).ProbeStatus()
		if err := resp.Err(); err != nil {
			return err
		}

		return printRemoteStatus(cmd, resp)
	},
}

var remoteEndpointCmd = &cobra.Command{
	Use:   "endpoint <backend-url>",
	Args:  cobra.ExactArgs(1),
	Short: "Change the backend URL of the connection test",
	RunE: func(cmd *cobra.Command, args []string) error {
		resp := cli.NewAPIClient(apiAddress).SetEndpoint(args[0])
		if err := resp.Err(); err != nil {
			return err
		}

		return printRemoteStatus(cmd, resp)
	},
}

var remoteSubmitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Run the connection test",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := cli.NewAPIClient(apiAddress)

		resp := client.Submit()
		if err := resp.Err(); err != nil {
			return err
		}

		wait, _ := cmd.Flags().GetBool("wait")
		if !wait || resp.Body.State == probe.StateCompleted {
			return printRemoteStatus(cmd, resp)
		}

		if jsonOutput, _ := cmd.Flags().GetBool("json"); !jsonOutput {
			fmt.Fprintln(cmd.OutOrStdout(), renderStatus(resp.Body))
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return client.ProbeEvents().Stream(ctx, func(msg []byte) (bool, error) {
			var s probe.Status
			if err := json.Unmarshal(msg, &s); err != nil {
				return false, err
			}
			if s.State != probe.StateCompleted {
				return true, nil
			}
			return false, printRemoteStatus(cmd, &cli.TypedAPIResponse[probe.Status]{Body: s})
		})
	},
}

var remoteWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream state changes of the connection test",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		jsonOutput, _ := cmd.Flags().GetBool("json")
		out := cmd.OutOrStdout()

		return cli.NewAPIClient(apiAddress).ProbeEvents().Stream(ctx, func(msg []byte) (bool, error) {
			if jsonOutput {
				_, err := fmt.Fprintln(out, string(msg))
				return true, err
			}

			var s probe.Status
			if err := json.Unmarshal(msg, &s); err != nil {
				return false, err
			}
			fmt.Fprintln(out, renderRemoteStatus(s))
			return true, nil
		})
	},
}

var remoteChecksCmd = &cobra.Command{
	Use:   "checks",
	Short: "Show the check results of a running hellostack server",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := cli.NewAPIClient(apiAddress)

		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			resp := client.Checks()
			if err := resp.Err(); err != nil {
				return err
			}
			return resp.Print(cmd.OutOrStdout())
		}

		resp := client.CheckResults()
		if err := resp.Err(); err != nil {
			return err
		}

		printCheckResults(cmd, resp.Body)
		if !resp.Body.OK() {
			return exitError{code: 1}
		}
		return nil
	},
}

var remoteStepsCmd = &cobra.Command{
	Use:   "steps",
	Short: "Show the guide as served by a running hellostack server",
	RunE: func(cmd *cobra.Command, args []string) error {
		resp := cli.NewAPIClient(apiAddress).Steps()
		if err := resp.Err(); err != nil {
			return err
		}

		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			return resp.Print(cmd.OutOrStdout())
		}

		for i, step := range resp.Body {
			fmt.Fprintln(cmd.OutOrStdout(), renderStep(i+1, step))
		}
		return nil
	},
}

func printRemoteStatus(cmd *cobra.Command, resp *cli.TypedAPIResponse[probe.Status]) error {
	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return resp.Print(cmd.OutOrStdout())
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderRemoteStatus(resp.Body))
	return nil
}

func renderRemoteStatus(s probe.Status) string {
	if view := renderStatus(s); view != "" {
		return view
	}
	return "idle (backend url: " + wrapNotSet(s.Endpoint) + ")"
}
