package root

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:   "taskhub",
	Short: "Taskhub admin CLI",
	Long:  "Command line interface for administering the Taskhub API",
}

// GetRoot returns the root Cobra command.
func GetRoot() *cobra.Command {
	return rootCmd
}
