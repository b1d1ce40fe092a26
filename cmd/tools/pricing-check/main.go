// cmd/tools/pricing-check/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"quotebot/internal/models"
	"quotebot/internal/pricing"
	"quotebot/internal/quote"
)

func main() {
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)
	validatePath := validateCmd.String("path", "configs/pricing.json", "Path to pricing document")

	matrixCmd := flag.NewFlagSet("matrix", flag.ExitOnError)
	matrixPath := matrixCmd.String("path", "configs/pricing.json", "Path to pricing document")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "validate":
		validateCmd.Parse(os.Args[2:])
		runValidate(*validatePath)
	case "matrix":
		matrixCmd.Parse(os.Args[2:])
		runMatrix(*matrixPath)
	default:
		help()
		os.Exit(1)
	}
}

func runValidate(path string) {
	_, err := pricing.Load(path)
	if err != nil {
		fmt.Printf("❌ %s: %v\n", path, err)
		os.Exit(1)
	}
	fmt.Printf("✅ %s: pricing document is valid\n", path)
}

func runMatrix(path string) {
	table, err := pricing.Load(path)
	if err != nil {
		fmt.Printf("❌ %s: %v\n", path, err)
		os.Exit(1)
	}

	engine := quote.NewEngine(table)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "BUNDLE\tFORMAT\tPLATFORM\tBASE\tCOARSE MIN\tCOARSE MAX")

	for _, bundle := range pricing.Bundles {
		for _, format := range pricing.Formats {
			for _, platform := range pricing.Platforms {
				q := engine.QuoteFor(models.SlotSet{
					Bundle:   bundle,
					Format:   format,
					Platform: platform,
					Coarse:   true,
				})
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\n",
					bundle, format, platform, q.Base, q.Min, q.Max)
			}
		}
	}

	w.Flush()
}

func help() {
	fmt.Println("Usage: pricing-check <command> [flags]")
	fmt.Println("Commands:")
	fmt.Println("  validate  Validate a pricing document against the schema")
	fmt.Println("  matrix    Print the coarse quote matrix for every combination")
}
