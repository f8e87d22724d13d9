package main

import "github.com/harmonia-music/harmonia/cmd"

func main() {
	cmd.Execute()
}
