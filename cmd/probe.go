package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/hellostack/hellostack/pkg/probe"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"
)

func init() {
	probeCmd.Flags().BoolP("json", "j", false, "print the probe result as JSON")
	probeCmd.Flags().Bool("exit-with-status", false, "exit with status code 0 if the backend answered successfully, 1 otherwise")
	probeCmd.Flags().BoolP("interactive", "i", false, "keep prompting for backend URLs and re-run the probe on every submission")

	rootCmd.AddCommand(probeCmd)
}

var probeCmd = &cobra.Command{
	Use:   "probe [backend-url]",
	Args:  cobra.MaximumNArgs(1),
	Short: "Test the connection to your deployed backend",
	Long: "This command requests <backend-url>/api/hello once and shows the message your backend returned.\n\n" +
		"When no URL is given, the backend url from the configuration, $HELLOSTACK_BACKEND_URL or $VITE_BACKEND_URL is used. " +
		"A URL without scheme is requested via https.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		var explicit string
		if len(args) > 0 {
			explicit = args[0]
		}

		widget := probe.NewWidget(probe.NewProber(nil), cfg.InitialEndpoint(explicit))
		defer widget.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		jsonOutput, _ := cmd.Flags().GetBool("json")
		exitWithStatus, _ := cmd.Flags().GetBool("exit-with-status")
		interactive, _ := cmd.Flags().GetBool("interactive")

		if interactive {
			return runInteractiveProbe(ctx, widget, cmd.InOrStdin(), cmd.OutOrStdout())
		}

		status, err := submitAndWait(ctx, widget, cmd.OutOrStdout(), !jsonOutput)
		if err != nil {
			return err
		}

		if jsonOutput {
			if err := printResultJSON(cmd.OutOrStdout(), status.Result); err != nil {
				return err
			}
		}

		if exitWithStatus && !status.Result.OK() {
			return exitError{code: 1}
		}

		return nil
	},
}

// submitAndWait submits a probe and renders every state transition until it
// completes. An interrupt abandons the probe.
func submitAndWait(ctx context.Context, widget *probe.Widget, out io.Writer, render bool) (probe.Status, error) {
	updates, unsubscribe := widget.Subscribe()
	defer unsubscribe()

	// drain the current status; the next update belongs to this submission
	<-updates

	if status, ok := widget.Submit(context.Background()); !ok {
		return status, errors.New("a probe is already in flight")
	}

	for {
		select {
		case s := <-updates:
			if render {
				if view := renderStatus(s); view != "" {
					fmt.Fprintln(out, view)
				}
			}
			if s.State == probe.StateCompleted {
				return s, nil
			}

		case <-ctx.Done():
			widget.Close()
			log.WithFields(log.Fields{"kind": "probe"}).Info("probe abandoned")
			return widget.Status(), errors.New("probe abandoned")
		}
	}
}

func runInteractiveProbe(ctx context.Context, widget *probe.Widget, in io.Reader, out io.Writer) error {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		current := widget.Endpoint()
		if current == "" {
			current = styleNotSet.Render("https://your-backend-service.onrender.com")
		}
		fmt.Fprintf(out, "backend url [%s]: ", current)

		var line string
		select {
		case l, ok := <-lines:
			if !ok {
				fmt.Fprintln(out)
				return nil
			}
			line = l
		case <-ctx.Done():
			fmt.Fprintln(out)
			return nil
		}

		if strings.TrimSpace(line) != "" {
			widget.SetEndpoint(line)
		}

		if _, err := submitAndWait(ctx, widget, out, true); err != nil {
			return err
		}
	}
}

func printResultJSON(out io.Writer, r *probe.Result) error {
	body, err := json.MarshalIndent(r, "", "    ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal result as JSON")
	}

	_, err = fmt.Fprintln(out, string(pretty.Color(body, nil)))
	return err
}
