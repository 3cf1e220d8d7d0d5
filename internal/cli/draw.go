package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/routemap/pkg/errors"
	"github.com/matzehuels/routemap/pkg/pipeline"
	"github.com/matzehuels/routemap/pkg/route"
)

// drawCommand renders an edge list with a path read from a path file, or
// with no highlight when none is given.
func (c *CLI) drawCommand() *cobra.Command {
	var (
		rf       renderFlags
		pathFile string
	)

	cmd := &cobra.Command{
		Use:   "draw <file>",
		Short: "Draw an edge list, highlighting a saved path",
		Long: `Draw an edge list on a circle. With --path-file, the path saved by
"routemap route --path-file" is highlighted; nodes are not re-queried.`,
		Example: `  routemap route cities.csv --from A --to D --path-file path.txt -f dot
  routemap draw cities.csv --path-file path.txt -o map`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			w := cmd.OutOrStdout()

			opts, err := rf.options(cmd)
			if err != nil {
				return err
			}

			runner := c.newRunner()
			g, err := runner.Load(ctx, args[0])
			if err != nil {
				return err
			}

			res := route.NotFound()
			if pathFile != "" {
				path, err := pipeline.ReadPathFile(pathFile)
				if err != nil {
					return err
				}
				cost, ok := route.PathCost(g, path)
				if !ok {
					return errors.New(errors.ErrCodeInvalidInput, "%s does not describe a path of %s", pathFile, args[0])
				}
				res = route.Result{Found: true, Cost: cost, Path: path}
			}

			files, err := runner.Render(ctx, g, res, opts)
			if err != nil {
				return err
			}
			printSuccess(w, "Rendered %s", args[0])
			printStats(w, g.NodeCount(), g.EdgeCount())
			for _, f := range files {
				printFile(w, f)
			}
			return nil
		},
	}

	rf.register(cmd)
	cmd.Flags().StringVar(&pathFile, "path-file", "", "path to highlight, as written by route --path-file")
	return cmd
}
