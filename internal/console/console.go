// internal/console/console.go
package console

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/tamzrod/pemf-controller/internal/protocol"
	"github.com/tamzrod/pemf-controller/internal/session"
)

// Controller is the dispatcher surface the console drives.
type Controller interface {
	Apply(req session.Request) session.Parameters
	ReadCurrent() protocol.SignalReading
	State() *session.State
}

// Console is a line-oriented second control surface.
type Console struct {
	ctl Controller
	rl  *readline.Instance
}

// New attaches a readline prompt to the terminal.
func New(ctl Controller) (*Console, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "pemf> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	return &Console{ctl: ctl, rl: rl}, nil
}

// Stdout returns a writer that does not clobber the prompt.
func (c *Console) Stdout() io.Writer {
	return c.rl.Stdout()
}

// Run reads commands until exit, EOF or ctx is done. cancel is called on exit.
func (c *Console) Run(ctx context.Context, cancel context.CancelFunc) {
	defer c.rl.Close()

	printHelp(c.rl.Stdout())

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := c.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(c.rl.Stdout(), "Exiting...")
			cancel()
			return
		}

		if quit := Exec(c.ctl, line, c.rl.Stdout()); quit {
			cancel()
			return
		}
	}
}

// Exec runs one command line against ctl and reports whether the user asked to quit.
func Exec(ctl Controller, line string, out io.Writer) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return false
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		printHelp(out)

	case "set", "s":
		cmdSet(ctl, args, out)

	case "show":
		printParams(out, ctl.State().Snapshot())

	case "read", "r":
		r := ctl.ReadCurrent()
		fmt.Fprintf(out, "generator: %g Hz, %g %%\n", r.FrequencyHz, r.DutyPercent)

	case "quit", "exit", "q":
		fmt.Fprintln(out, "Exiting...")
		return true

	default:
		fmt.Fprintf(out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return false
}

// cmdSet forwards raw key=value pairs. Clamping is the dispatcher's job.
func cmdSet(ctl Controller, args []string, out io.Writer) {
	values := make(map[string][]string)
	for _, a := range args {
		k, v, ok := strings.Cut(a, "=")
		if !ok {
			fmt.Fprintf(out, "Invalid argument: %s\n", a)
			return
		}
		values[strings.ToLower(k)] = append(values[strings.ToLower(k)], v)
	}

	req := session.ParseRequest(values)
	if req.IsEmpty() {
		fmt.Fprintln(out, "Usage: set [freq=<hz>] [duty=<percent>] [time=<minutes>]")
		return
	}

	printParams(out, ctl.Apply(req))
}

func printParams(out io.Writer, p session.Parameters) {
	fmt.Fprintf(out, "freq=%g Hz duty=%d %% time=%d min\n", p.FrequencyHz, p.DutyPercent, p.DurationMinutes)
}

func printHelp(out io.Writer) {
	fmt.Fprintln(out, `
Commands:
  set freq=<hz> duty=<percent> time=<minutes>   apply any subset
  show                                          current session
  read                                          query the signal generator
  help                                          this text
  exit                                          leave the console`)
}
