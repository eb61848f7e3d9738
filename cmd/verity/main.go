// Package main provides the verity CLI for running policy check suites.
package main

func main() {
	Execute()
}
