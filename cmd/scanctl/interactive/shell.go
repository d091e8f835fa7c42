// cmd/scanctl/interactive/shell.go
package interactive

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/tamzrod/scanctl/cmd/scanctl/commands"
	"github.com/tamzrod/scanctl/internal/scanner"
	"github.com/tamzrod/scanctl/internal/uniden"
)

// Shell is an interactive command loop bound to one scanner.
type Shell struct {
	sc  *scanner.Scanner
	out io.Writer
	rl  *readline.Instance
}

// New creates a readline backed shell.
func New(sc *scanner.Scanner) (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          sc.Name() + "> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete: readline.NewPrefixCompleter(
			readline.PcItem("help"),
			readline.PcItem("info"),
			readline.PcItem("status"),
			readline.PcItem("systems"),
			readline.PcItem("settings"),
			readline.PcItem("prg"),
			readline.PcItem("epg"),
			readline.PcItem("raw"),
			readline.PcItem("quit"),
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	return &Shell{sc: sc, out: rl.Stdout(), rl: rl}, nil
}

// Stdout returns a writer that properly coordinates with the readline input.
// Use this for log output to avoid interfering with the command prompt.
func (s *Shell) Stdout() io.Writer {
	return s.rl.Stdout()
}

// Run starts the interactive command loop.
func (s *Shell) Run(ctx context.Context) {
	defer s.rl.Close()

	s.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := s.rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(s.out, "Exiting...")
			return
		}

		if s.Execute(ctx, line) {
			fmt.Fprintln(s.out, "Exiting...")
			return
		}
	}
}

// Execute runs one input line and reports whether the shell should exit.
func (s *Shell) Execute(ctx context.Context, line string) bool {
	input := strings.TrimSpace(line)
	if input == "" {
		return false
	}

	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	var err error
	switch cmd {
	case "help", "?":
		s.printHelp()

	case "info", "i":
		err = commands.RunInfo(ctx, s.sc, s.out)

	case "status", "s":
		err = commands.RunStatus(ctx, s.sc, s.out)

	case "systems", "sys":
		err = commands.RunSystems(ctx, s.sc, s.out)

	case "settings", "set":
		err = commands.RunSettings(ctx, s.sc, s.out)

	case "prg":
		if err = s.sc.EnterProgrammingMode(ctx); err == nil {
			fmt.Fprintln(s.out, "OK")
		}

	case "epg":
		if err = s.sc.ExitProgrammingMode(ctx); err == nil {
			fmt.Fprintln(s.out, "OK")
		}

	case "raw", "r":
		err = s.cmdRaw(ctx, args)

	case "quit", "exit", "q":
		return true

	default:
		fmt.Fprintf(s.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}

	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
	}
	return false
}

func (s *Shell) cmdRaw(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(s.out, "Usage: raw <command>")
		fmt.Fprintln(s.out, "  Example: raw SIN,12")
		return nil
	}

	command := strings.Join(args, " ")
	if len(command) >= uniden.MnemonicLen {
		command = strings.ToUpper(command[:uniden.MnemonicLen]) + command[uniden.MnemonicLen:]
	}

	fields, err := s.sc.Exec(ctx, command)
	if err != nil {
		return err
	}
	for i, f := range fields {
		fmt.Fprintf(s.out, "  %2d: %s\n", i, f)
	}
	return nil
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.out, `
Commands:
  info, i          Model and firmware version
  status, s        Current reception status
  systems, sys     Load and list scan systems
  settings, set    Load and show device settings
  prg / epg        Enter / exit programming mode
  raw, r <cmd>     Send a raw command (e.g. raw SCT)
  help, ?          Show this help
  quit, exit, q    Leave the shell`)
}
