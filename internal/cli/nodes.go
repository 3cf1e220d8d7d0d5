package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/routemap/pkg/buildinfo"
	rio "github.com/matzehuels/routemap/pkg/io"
	"github.com/matzehuels/routemap/pkg/route"
)

// nodesCommand lists the nodes of an edge list, optionally with adjacency.
func (c *CLI) nodesCommand() *cobra.Command {
	var structure bool

	cmd := &cobra.Command{
		Use:   "nodes <file>",
		Short: "List the nodes of an edge list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := c.newRunner().Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if structure {
				printStructure(w, g)
			} else {
				printNodes(w, g)
			}
			printStats(w, g.NodeCount(), g.EdgeCount())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&structure, "structure", "s", false, "print each node's neighbours and weights")
	return cmd
}

// distancesCommand prints the cheapest cost from one node to every node.
func (c *CLI) distancesCommand() *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:     "distances <file>",
		Short:   "List the cheapest distance from one node to every node",
		Example: `  routemap distances cities.csv --from A`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			g, err := c.newRunner().Load(ctx, args[0])
			if err != nil {
				return err
			}

			start, err := pickNode(ctx, from, "from", "Select start node", g.Nodes())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if !g.Has(start) {
				printWarning(w, "%s is not a node of %s", start, args[0])
			}
			fmt.Fprintln(w, distanceTable(start, route.Distances(g, start)))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "start node")
	return cmd
}

// convertCommand rewrites an edge list as JSON.
func (c *CLI) convertCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:     "convert <file>",
		Short:   "Convert an edge list to JSON",
		Example: `  routemap convert cities.csv -o cities.json`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := c.newRunner().Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if output == "" {
				return rio.WriteJSON(g, w)
			}
			if err := rio.ExportJSON(g, output); err != nil {
				return err
			}
			printSuccess(w, "Converted %s", args[0])
			printFile(w, output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}

// versionCommand prints build information.
func (c *CLI) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), appName)
			fmt.Fprintln(cmd.OutOrStdout(), buildinfo.String())
		},
	}
}
