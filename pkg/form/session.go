package form

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/saturnines/reservation-exerciser/pkg/dispatcher"
	"github.com/saturnines/reservation-exerciser/pkg/reservation"
)

// Dispatcher is the part of dispatcher.Dispatcher a session needs.
type Dispatcher interface {
	Dispatch(ctx context.Context, t dispatcher.Transport, op reservation.Operation, draft reservation.Draft) dispatcher.Result
}

const helpText = `commands:
  tab <REST|GraphQL|SOAP|gRPC>   switch transport
  set <field> [value...]          edit id, dateDebut, dateFin or preferences
  create | get | update | delete | list
  show                            redraw the form
  help                            this text
  quit                            leave`

// Session drives the form from text commands, one line per action.
type Session struct {
	state State
	d     Dispatcher
	out   io.Writer
}

// NewSession starts from Initial().
func NewSession(d Dispatcher, out io.Writer) *Session {
	return &Session{state: Initial(), d: d, out: out}
}

// State returns the current screen.
func (s *Session) State() State {
	return s.state
}

// Run reads commands until EOF, quit or ctx is done. Lines have no
// length limit.
func (s *Session) Run(ctx context.Context, in io.Reader) error {
	fmt.Fprint(s.out, s.state.Render())

	r := bufio.NewReader(in)
	for {
		fmt.Fprint(s.out, "> ")
		line, err := r.ReadString('\n')
		if line != "" && s.Handle(ctx, strings.TrimRight(line, "\r\n")) {
			return nil
		}
		if err != nil {
			fmt.Fprintln(s.out)
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
}

// Handle applies one command line. It returns true when the user quits.
func (s *Session) Handle(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}

	cmd, args := strings.ToLower(fields[0]), fields[1:]
	switch cmd {
	case "quit", "exit", "q":
		return true
	case "help", "?":
		fmt.Fprintln(s.out, helpText)
	case "show":
		fmt.Fprint(s.out, s.state.Render())
	case "tab":
		s.selectTab(args)
	case "set":
		s.setField(line, args)
	default:
		op, err := reservation.ParseOperation(cmd)
		if err != nil {
			fmt.Fprintf(s.out, "unknown command %q, type help\n", fields[0])
			return false
		}
		s.press(ctx, op)
	}
	return false
}

func (s *Session) selectTab(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.out, "usage: tab <REST|GraphQL|SOAP|gRPC>")
		return
	}
	t, err := dispatcher.ParseTransport(args[0])
	if err != nil {
		fmt.Fprintln(s.out, err)
		return
	}
	s.state = Reduce(s.state, TabSelected{Tab: t})
	fmt.Fprint(s.out, s.state.Render())
}

func (s *Session) setField(line string, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(s.out, "usage: set <field> [value...]")
		return
	}
	f, err := ParseField(args[0])
	if err != nil {
		fmt.Fprintln(s.out, err)
		return
	}
	s.state = Reduce(s.state, FieldChanged{Field: f, Value: valueAfter(line, args[0])})
}

// valueAfter keeps the raw text after the field name, inner spacing included.
func valueAfter(line, field string) string {
	rest := strings.TrimSpace(line)
	rest = strings.TrimSpace(rest[len(strings.Fields(rest)[0]):])
	return strings.TrimSpace(strings.TrimPrefix(rest, field))
}

func (s *Session) press(ctx context.Context, op reservation.Operation) {
	if !s.state.Tab.Callable() {
		fmt.Fprintln(s.out, Hint(s.state.Tab))
		return
	}
	res := s.d.Dispatch(ctx, s.state.Tab, op, s.state.Draft)
	s.state = Reduce(s.state, ResultReceived{Text: res.Text})
	fmt.Fprintf(s.out, "Résultat:\n%s\n", s.state.Result)
}
