package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/telhawk-systems/scannorm/pkg/adapter/builtin"
)

var adaptersCmd = &cobra.Command{
	Use:   "adapters",
	Short: "List built-in adapters",
	Run: func(cmd *cobra.Command, args []string) {
		reg := builtin.Registry()
		for _, name := range reg.Names() {
			a := reg.Get(name)
			fmt.Fprintf(cmd.OutOrStdout(), "%-20s %-5s %-17s %s\n",
				a.Name, a.Format, a.Schema.Name, strings.Join(a.MIMETypes, ","))
		}
	},
}

func init() {
	rootCmd.AddCommand(adaptersCmd)
}
