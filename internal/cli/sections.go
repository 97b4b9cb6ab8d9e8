package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nmehta/dpdpacheck/internal/checklist"
)

var showItems bool

// sectionsCmd represents the sections command
var sectionsCmd = &cobra.Command{
	Use:   "sections",
	Short: "List the DPDPA sections covered by the built-in checklists",
	Long: `Sections prints every statute section this tool checks against.
With --items, the individual checklist obligations are listed under
each section along with their identifiers.`,
	RunE: runSections,
}

func init() {
	rootCmd.AddCommand(sectionsCmd)
	sectionsCmd.Flags().BoolVar(&showItems, "items", false, "list checklist obligations per section")
}

func runSections(cmd *cobra.Command, args []string) error {
	reg, err := checklist.Load()
	if err != nil {
		return fmt.Errorf("load checklists: %w", err)
	}

	for _, cl := range reg.All() {
		fmt.Printf("%s\n", cl.Section)
		fmt.Printf("  %s\n", cl.Meaning)
		if showItems {
			for _, item := range cl.Items {
				fmt.Printf("  [%s] %s\n", item.ID, item.Text)
			}
		}
		fmt.Println()
	}
	return nil
}
