/*
Package dsl provides a fluent builder for constructing mazes in Go code.

It is the programmatic counterpart of the digit text format: handy for demo
content, tests and generated layouts where writing rows by hand is tedious.

Example usage:

	package main

	import (
		"github.com/aretw0/wayfinder/pkg/dsl"
	)

	func main() {
		grid, err := dsl.New(9, 9).
			Row(1, 0, 7).
			Column(7, 1, 7).
			Start(0, 0).
			Destination(3, 5).
			Build()
		// ... pass grid to Service.SolveGrid or a store
	}
*/
package dsl
