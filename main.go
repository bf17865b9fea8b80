package main

import "github.com/lepinkainen/libris/cmd"

var execute = cmd.Execute

func main() {
	execute()
}
