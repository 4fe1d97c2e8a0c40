package cmd

import (
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/ginjaninja78/intacct-functions/pkg/content"
)

// functionsCmd lists the functions a definition entry may name.
var functionsCmd = &cobra.Command{
	Use:   "functions",
	Short: "List supported functions and their options",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		printFunctions(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(functionsCmd)
}

func printFunctions(w io.Writer) {
	table := tableView(w)
	table.SetHeader([]string{"Function", "Options"})
	for _, name := range content.Names() {
		options, _ := content.Options(name)
		table.Append([]string{name, strings.Join(options, ", ")})
	}
	table.Render()
}

// tableView is a borderless, left aligned table.
func tableView(w io.Writer) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("    ")
	table.SetNoWhiteSpace(true)
	return table
}
