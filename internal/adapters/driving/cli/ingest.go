package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/askdocs/internal/core/ports/driven"
	"github.com/custodia-labs/askdocs/internal/core/ports/driving"
	"github.com/custodia-labs/askdocs/internal/loader/jsondataset"
	"github.com/custodia-labs/askdocs/internal/loader/pdfdataset"
)

var (
	ingestTextField      string
	ingestMetadataFields []string
	ingestChunkSize      int
	ingestOverlap        int
	ingestFormat         string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [file]",
	Short: "Ingest a document file into the index",
	Long: `Loads documents from a JSON array or PDF file, splits them into
overlapping token chunks, embeds the chunks and stores them in the
local index.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVar(&ingestTextField, "text-field", jsondataset.DefaultTextField,
		"JSON field holding the document text")
	ingestCmd.Flags().StringSliceVar(&ingestMetadataFields, "metadata-fields",
		[]string{"title", "category", "author", "date"},
		"JSON fields copied into chunk metadata")
	ingestCmd.Flags().IntVar(&ingestChunkSize, "chunk-size", 0, "tokens per chunk (0 = configured default)")
	ingestCmd.Flags().IntVar(&ingestOverlap, "overlap", -1, "overlapping tokens between chunks (-1 = configured default)")
	ingestCmd.Flags().StringVar(&ingestFormat, "format", "json", "input format: json or pdf")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	var loader driven.DatasetLoader
	switch ingestFormat {
	case "json":
		loader = jsondataset.New()
	case "pdf":
		loader = pdfdataset.New()
	default:
		return fmt.Errorf("unknown format %q (want json or pdf)", ingestFormat)
	}

	if err := initIngestor(loader, ingestChunkSize, ingestOverlap); err != nil {
		return err
	}
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	stats, err := ingestService.Ingest(context.Background(), args[0], driving.IngestOptions{
		TextField:      ingestTextField,
		MetadataFields: ingestMetadataFields,
	})
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	cmd.Printf("Loaded %d documents\n", stats.DocumentsLoaded)
	cmd.Printf("Created %d chunks\n", stats.ChunksCreated)
	cmd.Printf("Indexed %d chunks\n", stats.ChunksIndexed)
	return nil
}
