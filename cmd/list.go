package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tberndt/sheetfeed/internal/drive"
)

func newListCmd() *cobra.Command {
	var (
		folders  bool
		pageSize int64
		query    string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the files in the configured Drive folder",
		Long: `List the files in the configured Drive folder, in the order the remote
service reports them. With --folders, lists the subfolders instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := newManager(cmd.Context())
			if err != nil {
				return err
			}

			var files []drive.File
			if folders {
				files, err = mgr.ListSubfolders(cmd.Context(), "")
			} else {
				files, err = mgr.ListFilesInFolder(cmd.Context(), &drive.ListOptions{
					PageSize: pageSize,
					Query:    query,
				})
			}
			if err != nil {
				return err
			}

			for _, f := range files {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", f.ID, f.Name)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&folders, "folders", false, "List subfolders instead of files")
	cmd.Flags().Int64Var(&pageSize, "page-size", 0, "Files to fetch per page (default: service default)")
	cmd.Flags().StringVar(&query, "query", "", "Additional Drive query to AND with the folder filter")

	return cmd
}
