package main

import "github.com/pitlane-dev/gridrace/cmd"

func main() {
	cmd.Execute()
}
