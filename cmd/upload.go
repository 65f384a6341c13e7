package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tberndt/sheetfeed/internal/dataset"
)

func newUploadCmd() *cobra.Command {
	var (
		spreadsheetID string
		sheetName     string
		imageColSpecs []string
	)

	cmd := &cobra.Command{
		Use:   "upload <csv-file>",
		Short: "Upload a CSV dataset into a spreadsheet",
		Long: `Upload a CSV dataset into the named sheet of a spreadsheet, creating the
sheet when absent. The first CSV row becomes the header row.

Image columns name Drive-hosted files; each cell is replaced with an
=IMAGE formula pointing at the file's public share link. An empty cell is
written as "no image"; a cell naming a missing file aborts the upload.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := dataset.FromCSVFile(args[0])
			if err != nil {
				return err
			}

			imageCols, err := parseImageColSpecs(imageColSpecs)
			if err != nil {
				return err
			}

			mgr, err := newManager(cmd.Context())
			if err != nil {
				return err
			}

			result, err := mgr.CreateSheetWithData(cmd.Context(), spreadsheetID, sheetName, table, imageCols)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d row(s) (%d cell(s)) to %s, embedded %d image(s)\n",
				result.UpdatedRows, result.UpdatedCells, result.UpdatedRange, result.ImagesEmbedded)
			return nil
		},
	}

	cmd.Flags().StringVar(&spreadsheetID, "spreadsheet", "", "ID of the target spreadsheet (required)")
	cmd.Flags().StringVar(&sheetName, "sheet", "", "Name of the sheet (tab) to write (required)")
	cmd.Flags().StringArrayVar(&imageColSpecs, "image-col", nil, "Image column as column=folderID (repeatable; empty folderID means the configured folder)")
	_ = cmd.MarkFlagRequired("spreadsheet")
	_ = cmd.MarkFlagRequired("sheet")

	return cmd
}

// parseImageColSpecs turns repeated "column=folderID" flags into the map
// CreateSheetWithData expects.
func parseImageColSpecs(specs []string) (map[string]string, error) {
	if len(specs) == 0 {
		return nil, nil
	}

	cols := make(map[string]string, len(specs))
	for _, spec := range specs {
		name, folder, found := strings.Cut(spec, "=")
		if !found || name == "" {
			return nil, fmt.Errorf("invalid --image-col value %q, expected column=folderID", spec)
		}
		cols[name] = folder
	}
	return cols, nil
}
