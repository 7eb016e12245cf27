package main

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/aretw0/wayfinder/pkg/adapters/file"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/dsl"
)

// samples are the demo mazes shipped under examples/mazes.
var samples = map[string]*dsl.Builder{
	"open": dsl.New(5, 5).
		Start(0, 0).
		Destination(4, 4),
	// A wall column with a single gap in the middle.
	"gate": dsl.New(3, 3).
		Wall(1, 0).
		Wall(1, 2).
		Start(0, 0).
		Destination(2, 2),
	"enclosed": dsl.New(5, 5).
		Walls(domain.Pt(3, 3), domain.Pt(3, 4), domain.Pt(4, 3)).
		Start(0, 0).
		Destination(4, 4),
	"spiral": dsl.New(9, 9).
		Row(1, 0, 7).
		Column(7, 1, 7).
		Row(7, 1, 7).
		Column(1, 3, 7).
		Row(3, 1, 5).
		Start(0, 0).
		Destination(3, 5),
}

func main() {
	targetDir := "examples/mazes"
	if len(os.Args) > 1 {
		targetDir = os.Args[1]
	}

	fmt.Printf("Generating demo mazes in: %s\n", targetDir)

	// The file store writes one <name>.txt per maze atomically.
	store := file.New(targetDir)
	ctx := context.Background()

	names := make([]string, 0, len(samples))
	for name := range samples {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		grid, err := samples[name].Build()
		check(err)
		check(store.Save(ctx, name, grid))
		fmt.Printf("  %s.txt\n", name)
	}

	fmt.Println("Done. Solve one with: wayfinder solve", targetDir+"/open.txt")
}

func check(err error) {
	if err != nil {
		panic(err)
	}
}
