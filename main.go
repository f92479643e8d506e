package main

import "github.com/they4kman/minesweep/cmd"

func main() {
	cmd.Execute()
}
