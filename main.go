package main

import "github.com/VoxDroid/cookme/cmd"

func main() {
	cmd.Execute()
}
