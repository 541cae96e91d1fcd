package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"archcanvas/internal/canvas"
)

func newRouteCommand(flags *globalFlags) *cobra.Command {
	var from, to int
	var all bool

	cmd := &cobra.Command{
		Use:   "route",
		Short: "Print connector path data",
		Long: `Prints the SVG path data for one pair of card indices, or with --all
for every connection in the diagram.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			diagram, err := loadDiagram(cfg)
			if err != nil {
				return err
			}
			store, err := canvas.NewStore(diagram)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if all {
				for _, conn := range store.Connections() {
					path, err := store.Route(conn.From, conn.To)
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "%s\t%s\n", conn, path)
				}
				return nil
			}

			path, err := store.Route(from, to)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, path)
			return nil
		},
	}

	cmd.Flags().IntVar(&from, "from", 0, "Source card index")
	cmd.Flags().IntVar(&to, "to", 1, "Target card index")
	cmd.Flags().BoolVar(&all, "all", false, "Route every connection")
	return cmd
}
