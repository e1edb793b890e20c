package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/kunalverma/axon-go/internal/domain"
	"github.com/kunalverma/axon-go/internal/ports"
)

// Prompter implements ConfirmationPrompter using stdin/stdout.
type Prompter struct {
	in          *bufio.Reader
	out         io.Writer
	interactive bool
}

// NewPrompter constructs a prompter referencing stdio. Enabled reports false
// when stdin is not a terminal, so piped input can never approve a command.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	interactive := false
	if in == nil {
		in = os.Stdin
		interactive = isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	} else {
		interactive = true
	}
	if out == nil {
		out = os.Stdout
	}
	return &Prompter{
		in:          bufio.NewReader(in),
		out:         out,
		interactive: interactive,
	}
}

// Enabled indicates the prompter can collect a human decision.
func (p *Prompter) Enabled() bool {
	return p.interactive
}

// Confirm asks the user for confirmation based on the guardrail action.
// Anything other than an explicit affirmative answer is a refusal.
func (p *Prompter) Confirm(pending domain.PendingCommand, risk domain.RiskAssessment) (bool, error) {
	if risk.Level != domain.RiskSafe {
		fmt.Fprintf(p.out, "\n⚠️  %s risk detected (%s)\n", strings.ToUpper(string(risk.Level)), risk.Action)
		for _, reason := range risk.Reasons {
			fmt.Fprintf(p.out, " - %s\n", reason)
		}
	}
	fmt.Fprintf(p.out, "Command:\n  %s\n", pending.Command)

	switch risk.Action {
	case domain.ActionExplicitConfirm:
		return p.askExplicit()
	case domain.ActionBlock:
		return false, nil
	default:
		return p.ask("[y/N]: ")
	}
}

func (p *Prompter) ask(prompt string) (bool, error) {
	fmt.Fprint(p.out, "Run this command? ", prompt)
	line, err := p.in.ReadString('\n')
	if err != nil {
		return false, err
	}
	line = strings.ToLower(strings.TrimSpace(line))
	return line == "y" || line == "yes", nil
}

func (p *Prompter) askExplicit() (bool, error) {
	fmt.Fprint(p.out, "Type 'yes' to confirm (or anything else to cancel): ")
	line, err := p.in.ReadString('\n')
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(line) == "yes", nil
}

var _ ports.ConfirmationPrompter = (*Prompter)(nil)
