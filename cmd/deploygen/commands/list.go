package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ListCmd implements the 'list' command.
type ListCmd struct{}

func (l *ListCmd) Run(glob *Global, root *CLI) error {
	cat, err := root.LoadCatalog()
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(glob.out(), 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "KEY\tDOMAIN\tTYPE")
	for _, r := range cat.All() {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Key, r.Domain, TypeLabel(r.Type))
	}
	return tw.Flush()
}

var titleCaser = cases.Title(language.English)

// TypeLabel turns a catalog project type such as "marketing-site" into "Marketing Site".
func TypeLabel(projectType string) string {
	return titleCaser.String(strings.ReplaceAll(projectType, "-", " "))
}
