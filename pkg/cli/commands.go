package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/saturnines/reservation-exerciser/pkg/dispatcher"
	"github.com/saturnines/reservation-exerciser/pkg/form"
	"github.com/saturnines/reservation-exerciser/pkg/reservation"
)

var opUsage = map[reservation.Operation]string{
	reservation.OpCreate: "Create a reservation from --start, --end and --preferences",
	reservation.OpRead:   "Fetch the reservation with --id",
	reservation.OpUpdate: "Replace the reservation with --id",
	reservation.OpDelete: "Delete the reservation with --id",
	reservation.OpList:   "List every reservation",
}

func draftFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "id",
			Usage: "reservation id",
		},
		&cli.StringFlag{
			Name:  "start",
			Usage: "start date, sent as dateDebut",
		},
		&cli.StringFlag{
			Name:  "end",
			Usage: "end date, sent as dateFin",
		},
		&cli.StringFlag{
			Name:    "preferences",
			Aliases: []string{"p"},
			Usage:   "free-text preferences",
		},
	}
}

func draftFromCmd(cmd *cli.Command) reservation.Draft {
	return reservation.Draft{
		ID:          cmd.String("id"),
		StartDate:   cmd.String("start"),
		EndDate:     cmd.String("end"),
		Preferences: cmd.String("preferences"),
	}
}

// transportCmd groups one subcommand per operation under t.
func transportCmd(a *app, t dispatcher.Transport) *cli.Command {
	ops := make([]*cli.Command, 0, len(reservation.Operations))
	for _, op := range reservation.Operations {
		ops = append(ops, opCmd(a, t, op))
	}

	return &cli.Command{
		Name:     strings.ToLower(string(t)),
		Usage:    fmt.Sprintf("Call the reservation service over %s", t),
		Commands: ops,
	}
}

// opCmd prints the dispatch result. An "Error: ..." result is still a
// successful run.
func opCmd(a *app, t dispatcher.Transport, op reservation.Operation) *cli.Command {
	return &cli.Command{
		Name:  string(op),
		Usage: opUsage[op],
		Flags: draftFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			res := a.dispatcher.Dispatch(ctx, t, op, draftFromCmd(cmd))
			_, err := fmt.Fprintln(writer(cmd), res.Text)
			return err
		},
	}
}

func formCmd(a *app) *cli.Command {
	return &cli.Command{
		Name:  "form",
		Usage: "Drive the reservation form interactively",
		Description: `Read one command per line and redraw the form after tab changes.

  tab <REST|GraphQL|SOAP|gRPC>
  set <id|dateDebut|dateFin|preferences> [value...]
  create | get | update | delete | list
  show | help | quit`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return form.NewSession(a.dispatcher, writer(cmd)).Run(ctx, reader(cmd))
		},
	}
}

func writer(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func reader(cmd *cli.Command) io.Reader {
	if r := cmd.Root().Reader; r != nil {
		return r
	}
	return os.Stdin
}
