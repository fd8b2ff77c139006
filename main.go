package main

import "github.com/alexiusacademia/gotube/cmd"

func main() {
	cmd.Execute()
}
