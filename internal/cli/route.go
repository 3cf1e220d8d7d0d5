package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/routemap/pkg/pipeline"
	"github.com/matzehuels/routemap/pkg/route"
)

// routeCommand creates the route command: load, query, report and render.
func (c *CLI) routeCommand() *cobra.Command {
	var (
		rf        renderFlags
		from, to  string
		all       bool
		pathFile  string
		structure bool
	)

	cmd := &cobra.Command{
		Use:   "route <file>",
		Short: "Find the cheapest route between two nodes and draw it",
		Long: `Load a weighted edge list (CSV with a header row, or JSON), find the cheapest
route between --from and --to, print it and draw the graph with the route
highlighted. Omitted --from/--to are picked interactively on a terminal.`,
		Example: `  routemap route cities.csv --from A --to D
  routemap route cities.csv --from A --to D -f png,svg -o out/map
  routemap route cities.csv --from A --to D --all --path-file path.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			w := cmd.OutOrStdout()

			opts, err := rf.options(cmd)
			if err != nil {
				return err
			}
			opts.Input = args[0]
			opts.PathFile = pathFile

			runner := c.newRunner()
			g, err := runner.Load(ctx, opts.Input)
			if err != nil {
				return err
			}
			if structure {
				printStructure(w, g)
				fmt.Fprintln(w)
			}

			if from, err = pickNode(ctx, from, "from", "Select start node", g.Nodes()); err != nil {
				return err
			}
			if to, err = pickNode(ctx, to, "to", "Select end node", g.Nodes()); err != nil {
				return err
			}
			opts.From, opts.To = from, to

			res := runner.Query(ctx, g, from, to)
			for _, n := range []string{from, to} {
				if !g.Has(n) {
					printWarning(w, "%s is not a node of %s", n, opts.Input)
				}
			}
			printRoute(w, from, to, res)

			if all {
				fmt.Fprintln(w)
				fmt.Fprintln(w, distanceTable(from, route.Distances(g, from)))
			}

			if pathFile != "" && res.Found {
				if err := pipeline.WritePathFile(pathFile, res); err != nil {
					return err
				}
				printInfo(w, "path saved to %s", pathFile)
			}

			prog := newProgress(c.Logger)
			files, err := runner.Render(ctx, g, res, opts)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Rendered %d file(s)", len(files)))

			fmt.Fprintln(w)
			printSuccess(w, "Rendered %s", opts.Input)
			printStats(w, g.NodeCount(), g.EdgeCount())
			for _, f := range files {
				printFile(w, f)
			}
			return nil
		},
	}

	rf.register(cmd)
	cmd.Flags().StringVar(&from, "from", "", "start node")
	cmd.Flags().StringVar(&to, "to", "", "end node")
	cmd.Flags().BoolVar(&all, "all", false, "also list the distance from --from to every node")
	cmd.Flags().StringVar(&pathFile, "path-file", "", "write the route as \"A --> B --> C\" to this file")
	cmd.Flags().BoolVar(&structure, "structure", true, "print the loaded adjacency before querying")

	return cmd
}
