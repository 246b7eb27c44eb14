package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/lexigraph/lexigraph/internal/convert"
)

func newConvertCmd() *cobra.Command {
	var opts convert.Options

	cmd := &cobra.Command{
		Use:   "convert <input.tsv[.gz]> <output.rdf.gz>",
		Short: "Convert a TSV edge dump into a compressed statement stream",
		Long: `Convert a tab-separated edge dump into gzip-compressed graph statements
ready for bulk loading. Node declarations, labels and edges are emitted in
load order; duplicate declarations are suppressed and parallel edges between
the same node pair are combined.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Environment settings fill in any flag left at its default.
			if cfg != nil {
				if !cmd.Flags().Changed("batch-size") {
					opts.BatchSize = cfg.BatchSize
				}
				if !cmd.Flags().Changed("compression-level") {
					opts.CompressionLevel = cfg.CompressionLevel
				}
				if !cmd.Flags().Changed("workers") {
					opts.Workers = cfg.Workers
				}
				if !cmd.Flags().Changed("strict") {
					opts.StrictRows = cfg.StrictRows
				}
			}

			conv := convert.New(opts, log)
			stats, err := conv.ConvertFile(cmd.Context(), args[0], args[1])
			if err != nil {
				return fmt.Errorf("convert: %w", err)
			}

			fmt.Fprintf(os.Stderr, "Read %d records (%d skipped): %d nodes, %d edges, %d relationships\n",
				stats.RecordsRead, stats.RowsSkipped, stats.Nodes, stats.Edges, stats.Relationships)
			fmt.Fprintf(os.Stderr, "Wrote %d batches, %d compressed bytes in %s\n",
				stats.Batches, stats.BytesWritten, stats.Duration.Round(time.Millisecond))

			output(stats, fmt.Sprintf("%d", stats.Nodes))
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.BatchSize, "batch-size", 0, "Fixed statements per batch (0 = adaptive)")
	cmd.Flags().IntVar(&opts.CompressionLevel, "compression-level", 2, "Gzip compression level for the output")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "Parse workers (0 = GOMAXPROCS)")
	cmd.Flags().BoolVar(&opts.StrictRows, "strict", false, "Abort on malformed rows instead of skipping them")

	return cmd
}
