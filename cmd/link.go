package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLinkCmd() *cobra.Command {
	var subfolderID string

	cmd := &cobra.Command{
		Use:   "link <file-name>",
		Short: "Print the public share link for a Drive file",
		Long: `Resolve a file by exact name in the configured folder, grant
anyone-with-the-link read access and print the public share URL.

When several files carry the same name, the first match in remote listing
order wins.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := newManager(cmd.Context())
			if err != nil {
				return err
			}

			url, err := mgr.GetDriveLink(cmd.Context(), args[0], subfolderID)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), url)
			return nil
		},
	}

	cmd.Flags().StringVar(&subfolderID, "subfolder", "", "Subfolder ID to search in (default: the configured folder)")

	return cmd
}
