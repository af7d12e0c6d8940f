package board

import (
	"github.com/spf13/cobra"
)

// BoardCmd returns the board parent command
func BoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Manage boards",
	}

	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(ListCmd())
	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(RenameCmd())
	cmd.AddCommand(CheckCmd())
	cmd.AddCommand(ExportCmd())
	cmd.AddCommand(DeleteCmd())

	return cmd
}
