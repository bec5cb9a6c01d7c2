package main

import "github.com/guettli/sendevent/cmd"

func main() {
	cmd.Execute()
}
