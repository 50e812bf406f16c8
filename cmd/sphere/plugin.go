package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"studysphere/internal/bootstrap"
	plugindto "studysphere/internal/modules/plugin/dto"
)

func newPluginCmd(dataDir *string) *cobra.Command {
	plugin := &cobra.Command{Use: "plugin", Short: "Plugin operations"}

	plugin.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List plugin manifests",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				plugins, err := app.PluginCLI.List(ctx)
				if err != nil {
					return err
				}
				if len(plugins) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no plugins configured")
					return nil
				}
				for _, p := range plugins {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s@%s enabled=%t binary=%s capabilities=%s\n",
						p.Name, p.Version, p.Enabled, p.Binary, strings.Join(p.Capabilities, ","))
				}
				return nil
			})
		},
	})

	plugin.AddCommand(&cobra.Command{
		Use:   "doctor",
		Short: "Validate plugin checksums and lifecycle",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				results, err := app.PluginCLI.Doctor(ctx)
				if err != nil {
					return err
				}
				if len(results) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no plugins configured")
					return nil
				}
				for _, r := range results {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s checksum=%t binary=%t lifecycle=%t", r.Name, r.ChecksumValid, r.BinaryReachable, r.LifecycleOK)
					if r.Error != "" {
						_, _ = fmt.Fprintf(cmd.OutOrStdout(), " error=%q", r.Error)
					}
					_, _ = fmt.Fprintln(cmd.OutOrStdout())
				}
				return nil
			})
		},
	})

	plugin.AddCommand(&cobra.Command{
		Use:   "commands <plugin>",
		Short: "List commands exposed by a plugin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				commands, err := app.PluginCLI.ListCommands(ctx, args[0])
				if err != nil {
					return err
				}
				if len(commands) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no commands")
					return nil
				}
				for _, item := range commands {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s kind=%s timeout_ms=%d title=%q\n", item.ID, item.Kind, item.TimeoutMS, item.Title)
				}
				return nil
			})
		},
	})

	var execInput, execDeck string
	execCmd := &cobra.Command{
		Use:   "exec <plugin> <command> [--input-json j] [--deck d]",
		Short: "Execute a plugin command",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateJSONInput(execInput); err != nil {
				return err
			}
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.PluginCLI.Execute(ctx, args[0], args[1], execInput, execDeck)
				if err != nil {
					return err
				}
				printExecution(cmd.OutOrStdout(), cmd.ErrOrStderr(), out)
				return nil
			})
		},
	}
	execCmd.Flags().StringVar(&execInput, "input-json", "", "JSON input payload")
	execCmd.Flags().StringVar(&execDeck, "deck", "", "deck whose cards travel with the request")
	plugin.AddCommand(execCmd)

	var cardsInput, cardsDeck string
	cardsCmd := &cobra.Command{
		Use:   "cards <plugin> <command> --deck <deck> [--input-json j]",
		Short: "Run a card generator and add its cards to a deck",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(cardsDeck) == "" {
				return fmt.Errorf("--deck is required")
			}
			if err := validateJSONInput(cardsInput); err != nil {
				return err
			}
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.PluginCLI.GenerateCards(ctx, args[0], args[1], cardsInput, cardsDeck)
				if err != nil {
					return err
				}
				printExecution(cmd.OutOrStdout(), cmd.ErrOrStderr(), out.ExecuteOutput)
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added %d cards to %s\n", out.Added, out.DeckName)
				return nil
			})
		},
	}
	cardsCmd.Flags().StringVar(&cardsInput, "input-json", "", "JSON input payload")
	cardsCmd.Flags().StringVar(&cardsDeck, "deck", "", "target deck id or name")
	plugin.AddCommand(cardsCmd)
	return plugin
}

func printExecution(stdout, stderr io.Writer, out plugindto.ExecuteOutput) {
	_, _ = fmt.Fprintf(stdout, "plugin=%s command=%s exit=%d\n", out.PluginName, out.CommandID, out.ExitCode)
	if strings.TrimSpace(out.Stdout) != "" {
		_, _ = fmt.Fprintln(stdout, out.Stdout)
	}
	if strings.TrimSpace(out.Stderr) != "" {
		_, _ = fmt.Fprintln(stderr, out.Stderr)
	}
	if strings.TrimSpace(out.OutputJSON) != "" {
		_, _ = fmt.Fprintln(stdout, out.OutputJSON)
	}
}

func validateJSONInput(input string) error {
	if strings.TrimSpace(input) == "" {
		return nil
	}
	if !json.Valid([]byte(input)) {
		return fmt.Errorf("--input-json must be valid JSON")
	}
	return nil
}
