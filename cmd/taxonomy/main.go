// Command taxonomy prints the section tree or resolves sections given as arguments.
//
//	go run ./cmd/taxonomy            # print every group and its leaves
//	go run ./cmd/taxonomy blood mri  # resolve the given leaves
package main

import (
	"fmt"
	"os"

	"medstory-be/internal/taxonomy"

	"github.com/fatih/color"
)

func main() {
	if len(os.Args) < 2 {
		for _, g := range taxonomy.Groups() {
			color.Cyan("%s", g)
			for _, leaf := range taxonomy.Leaves(g) {
				fmt.Printf("  - %s\n", leaf)
			}
		}
		return
	}

	failed := false
	for _, section := range os.Args[1:] {
		path, err := taxonomy.Resolve(section)
		if err != nil {
			color.Red("%s: %v", section, err)
			failed = true
			continue
		}
		color.Green("%s -> %s", section, path.String())
	}
	if failed {
		os.Exit(1)
	}
}
