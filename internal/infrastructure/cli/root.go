// Package cli is the client side of Axon: the cobra commands, the
// interactive session and the confirmation handshake.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kunalverma/axon-go/internal/app"
	"github.com/kunalverma/axon-go/internal/domain"
	"github.com/kunalverma/axon-go/internal/infrastructure/httpapi"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// NewRootCmd wires the cobra root command.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	container, err := app.BuildContainer(ctx, opts.Verbose)
	if err != nil {
		return nil, err
	}

	askCmd := newAskCommand(container)

	root := &cobra.Command{
		Use:   "axon [question]",
		Short: "Axon - personal AI assistant",
		Long:  "Axon answers questions from your documents, chats generally, and proposes system commands that only run after your confirmation.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			askCmd.SetArgs(args)
			return askCmd.ExecuteContext(cmd.Context())
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentPostRun = func(*cobra.Command, []string) {
		container.Close()
	}

	root.AddCommand(askCmd)
	root.AddCommand(newChatCommand(container))
	root.AddCommand(newServeCommand(container))
	root.AddCommand(newIngestCommand(container))
	root.AddCommand(newHistoryCommand(container))
	root.AddCommand(newConfigCommand(container))
	return root, nil
}

func newAskCommand(container *app.Container) *cobra.Command {
	var (
		server  string
		lane    string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask a single question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			session := newSession(container, server)
			query := strings.Join(args, " ")
			switch lane {
			case "":
				return session.Ask(ctx, query)
			case "general", "knowledge", "action":
				return askLane(ctx, session, lane, query)
			default:
				return fmt.Errorf("unknown lane %q (want general, knowledge or action)", lane)
			}
		},
	}

	cmd.Flags().StringVarP(&server, "server", "s", "", "Axon server address (default: answer in-process)")
	cmd.Flags().StringVarP(&lane, "lane", "l", "", "Force a lane instead of routing by keywords")
	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "Override request timeout")
	return cmd
}

func askLane(ctx context.Context, session *Session, lane, query string) error {
	var op func(context.Context, string) (domain.Answer, error)
	switch lane {
	case "general":
		op = session.Assistant.AnswerGeneral
	case "knowledge":
		op = session.Assistant.AnswerFromKnowledge
	default:
		op = session.Assistant.HandleAction
	}
	answer, err := op(ctx, query)
	if err != nil {
		return err
	}
	return session.Complete(ctx, query, answer)
}

func newChatCommand(container *app.Container) *cobra.Command {
	var server string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive conversation",
		RunE: func(cmd *cobra.Command, args []string) error {
			session := newSession(container, server)
			return runREPL(cmd.Context(), session, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&server, "server", "s", "", "Axon server address (default: answer in-process)")
	return cmd
}

func runREPL(ctx context.Context, session *Session, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, "Axon ready. Type a question, or 'exit' to leave.")
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "\n> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return nil
		}
		if err := session.Ask(ctx, line); err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}
	}
}

func newServeCommand(container *app.Container) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the Axon HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = container.Config.Server.Addr
			}
			server := &httpapi.Server{
				Assistant: container.Assistant,
				Logger:    container.Logger,
			}
			container.Logger.Info("server listening", map[string]interface{}{"addr": addr})
			return server.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")
	return cmd
}

func newIngestCommand(container *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest [directory]",
		Short: "Index documents into the knowledge store",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := container.Config.Retrieval.DataDir
			if len(args) == 1 {
				dir = args[0]
			}
			stats, err := container.Ingestor.Run(cmd.Context(), dir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d documents (%d chunks) from %s\n",
				stats.Documents, stats.Chunks, dir)
			return nil
		},
	}
	return cmd
}

func newHistoryCommand(container *app.Container) *cobra.Command {
	var (
		limit  int
		search string
		clear  bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past interactions",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.HistoryStore == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "History is disabled in the configuration.")
				return nil
			}
			if clear {
				if err := container.HistoryStore.Clear(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
				return nil
			}
			records, err := container.HistoryStore.Records(limit, search)
			if err != nil {
				return err
			}
			RenderHistory(cmd.OutOrStdout(), records)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", domain.DefaultHistoryLimit, "Maximum records to show")
	cmd.Flags().StringVar(&search, "search", "", "Filter by prompt, command or response")
	cmd.Flags().BoolVar(&clear, "clear", false, "Delete all history")
	return cmd
}

func newConfigCommand(container *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			cfg := container.Config
			fmt.Fprintf(out, "Config version: %s\n", cfg.ConfigFormatVersion)
			fmt.Fprintf(out, "Server: %s\n", cfg.Server.Addr)
			fmt.Fprintf(out, "Models configured: %d\n", len(cfg.Models))
			for _, model := range cfg.Models {
				fmt.Fprintf(out, "  - %s (%s)\n", model.Name, model.ModelID)
			}
			fmt.Fprintf(out, "Index: %s (k=%d)\n", cfg.Retrieval.IndexPath, cfg.Retrieval.K)
			fmt.Fprintf(out, "Guardrails: %s\n", enabledStatus(cfg.Security.Enabled))
			fmt.Fprintf(out, "History: %s\n", enabledStatus(cfg.History.Enabled))
			return nil
		},
	}
	return cmd
}

func enabledStatus(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}

// newSession assembles the interactive session. With a server address the
// assistant is remote; otherwise answers are produced in-process.
func newSession(container *app.Container, server string) *Session {
	var assistant domain.Assistant = container.Assistant
	if server != "" {
		if !strings.HasPrefix(server, "http://") && !strings.HasPrefix(server, "https://") {
			server = "http://" + server
		}
		assistant = NewHTTPClient(server, 0)
	}

	var security = container.Guardrail
	if !container.Config.Security.Enabled {
		security = nil
	}

	return &Session{
		Assistant: assistant,
		Security:  security,
		Executor:  container.Executor,
		Prompter:  NewPrompter(nil, nil),
		History:   container.HistoryStore,
		Out:       os.Stdout,
	}
}
