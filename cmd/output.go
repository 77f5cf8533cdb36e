package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/stocks/renderer"
	"github.com/google/subcommands"
)

// printMarkdown prints md styled for the terminal, or as is when it cannot be styled.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// writeReport prints the report, or writes it as an HTML page to htmlFile when set.
func writeReport(title, md, htmlFile string) subcommands.ExitStatus {
	if htmlFile == "" {
		printMarkdown(md)
		return subcommands.ExitSuccess
	}
	page, err := renderer.ToHTML(title, md)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering report: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := os.WriteFile(htmlFile, page, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing report %q: %v\n", htmlFile, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Report written to %s\n", htmlFile)
	return subcommands.ExitSuccess
}
