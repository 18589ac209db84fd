package main

import "brik/cmd"

func main() {
	cmd.Execute()
}
