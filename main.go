package main

import "github.com/icco/stepsynth/cmd"

func main() {
	cmd.Execute()
}
