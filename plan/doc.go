// Package plan assembles a fold pipeline from a textual description and runs
// it over a stream of parsed values.
//
// Stages are compiled once by New and joined in configuration order, so
//
//	stages: [filter "x % 2 == 0", transform "str(x)"]
//
// keeps even numbers and then renders them, while the reverse order renders
// every value first and filters the strings.
package plan
