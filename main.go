package main

import "github.com/rhartert/transit-router/cmd"

func main() {
	cmd.Execute()
}
