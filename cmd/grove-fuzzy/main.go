// Command grove-fuzzy is a small fuzzy-finder demo built on package
// fuzzyfinder, searching over the entries of the current directory.
package main

import (
	"fmt"
	"os"

	"github.com/grove-tui/grove/fuzzyfinder"
)

func main() {
	entries, err := os.ReadDir(".")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}

	f := fuzzyfinder.New(names, nil)
	f.Run()

	if v := f.Value(); v != nil {
		fmt.Println(*v)
	}
}
