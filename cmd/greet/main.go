package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"instancing-renderer/internal/greeting"
)

func main() {
	app := &cli.App{
		Name:  "greet",
		Usage: "print a dated greeting",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Value: "Estudiante", Usage: "who is greeting"},
			&cli.BoolFlag{Name: "date", Usage: "print only the current date"},
		},
		Action: func(c *cli.Context) error {
			g := greeting.New(c.App.Writer)
			if c.Bool("date") {
				_, err := fmt.Fprintln(c.App.Writer, g.Now())
				return err
			}
			return g.Greet(c.String("name"))
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
