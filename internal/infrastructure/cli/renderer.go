package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/kunalverma/axon-go/internal/domain"
)

// RenderPending prints a proposed command in a friendly, ASCII-only format.
func RenderPending(out io.Writer, pending domain.PendingCommand, now time.Time) {
	fmt.Fprintln(out, "The assistant proposes a command:")
	fmt.Fprintf(out, "  %s\n", pending.Description)
	if pending.Target != "" {
		fmt.Fprintf(out, "Target: %s\n", pending.Target)
	}
	if !pending.ExpiresAt.IsZero() {
		fmt.Fprintf(out, "Offer expires %s.\n", humanize.RelTime(pending.ExpiresAt, now, "ago", "from now"))
	}
}

// RenderExecution prints the outcome of a confirmed command.
func RenderExecution(out io.Writer, result domain.ExecutionResult) {
	if result.Ran {
		fmt.Fprintf(out, "\nCommand executed successfully in %s.\n",
			time.Duration(result.DurationMS)*time.Millisecond)
	} else if result.Err != nil {
		fmt.Fprintf(out, "\nCommand failed (exit %d): %v\n", result.ExitCode, result.Err)
	}
	if result.Stdout != "" {
		fmt.Fprintln(out, "\nstdout:")
		fmt.Fprintln(out, result.Stdout)
	}
	if result.Stderr != "" {
		fmt.Fprintln(out, "\nstderr:")
		fmt.Fprintln(out, result.Stderr)
	}
}

// RenderHistory prints saved interaction records, newest first.
func RenderHistory(out io.Writer, records []domain.HistoryRecord) {
	if len(records) == 0 {
		fmt.Fprintln(out, "No history yet.")
		return
	}
	for _, rec := range records {
		fmt.Fprintf(out, "%s  [%s] %s\n", humanize.Time(rec.Timestamp), rec.Lane, rec.Prompt)
		if rec.Command != "" {
			status := "declined"
			if rec.Approved {
				status = fmt.Sprintf("executed, exit %d", rec.ExitCode)
			}
			fmt.Fprintf(out, "    command: %s (%s)\n", rec.Command, status)
		} else if rec.Response != "" {
			fmt.Fprintf(out, "    %s\n", truncate(rec.Response, 120))
		}
	}
}

func truncate(text string, max int) string {
	if len(text) <= max {
		return text
	}
	return text[:max-3] + "..."
}
