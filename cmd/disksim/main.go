package main

import "github.com/ovasyliv/disksim/cmd/disksim/commands"

func main() {
	commands.Execute()
}
