package main

import "github.com/jhaapala/libris/cmd"

var execute = cmd.Execute

func main() {
	execute()
}
