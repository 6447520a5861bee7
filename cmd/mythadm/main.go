package main

import "github.com/bagrada/mythmeta/internal/cli"

func main() {
	cli.Execute()
}
