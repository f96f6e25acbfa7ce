package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/oakview/circulate/config"
)

// ConfigCmd represents the config command
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect circ configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE:  runConfigShowCommand,
}

func init() {
	ConfigCmd.AddCommand(configShowCmd)
}

func runConfigShowCommand(cmd *cobra.Command, args []string) error {
	v := config.GetViper()

	keys := v.AllKeys()
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("%s = %v\n", key, v.Get(key))
	}
	return nil
}
