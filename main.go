package main

import "github.com/chris/catsort/cmd"

func main() {
	cmd.Execute()
}
