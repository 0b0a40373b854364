package main

import "fobs/cmd/fobs/cmd"

func main() {
	cmd.Execute()
}
