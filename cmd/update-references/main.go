package main

import (
	"flag"
	"fmt"
	"os"

	"formulab/pkg/config"
	"formulab/pkg/visualtest"
)

// Regenerates the reference snapshots checked by the visualtest package.
func main() {
	root := flag.String("root", "pkg/visualtest", "visualtest package directory")
	only := flag.String("name", "", "regenerate only this reference")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: update-references [flags]\n\nReferences:\n")
		for _, ref := range visualtest.References {
			fmt.Fprintf(os.Stderr, "  %-22s %s\n", ref.Name, ref.Formula)
		}
		fmt.Fprintf(os.Stderr, "\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	logger := config.Default().Logger()
	n := 0
	for _, ref := range visualtest.References {
		if *only != "" && ref.Name != *only {
			continue
		}
		if err := visualtest.UpdateReferenceImage(ref.Shot(), ref.Path(*root), logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to generate %s: %v\n", ref.Name, err)
			os.Exit(1)
		}
		n++
	}
	if n == 0 {
		fmt.Fprintf(os.Stderr, "Unknown reference: %s\n", *only)
		os.Exit(1)
	}
	fmt.Printf("Generated %d reference images\n", n)
}
