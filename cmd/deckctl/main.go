package main

import "github.com/louisbranch/deckwright/cmd/deckctl/cmd"

func main() {
	cmd.Execute()
}
