package main

import "gamescout/cmd"

var execute = cmd.Execute

func main() {
	execute()
}
