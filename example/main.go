// Example program demonstrating the calcver library API.
//
// Run from the repo root:
//
//	go run ./example/
package main

import (
	"fmt"
	"log"
	"sort"

	"github.com/calcver/calcver/pkg/calcver"
)

func main() {
	calc, err := calcver.New(calcver.Options{Path: "."})
	if err != nil {
		log.Fatalf("creating calculator: %v", err)
	}
	defer calc.Close()

	version, err := calc.ComputeVersion()
	if err != nil {
		log.Fatalf("calculation failed: %v", err)
	}

	fmt.Printf("version: %s\n\n", version)

	snapshot := calc.MetadataSnapshot()
	keys := make([]string, 0, len(snapshot))
	for k := range snapshot {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		fmt.Printf("%-28s %s\n", k, snapshot[k])
	}
}
