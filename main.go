// Package main is the entry point for the tamper CLI.
package main

import "tamper.dev/pkg/tamper/cmd"

func main() {
	cmd.Execute()
}
