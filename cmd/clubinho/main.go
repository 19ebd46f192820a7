package main

import "github.com/waabox/clubinho/internal/cli"

func main() {
	cli.Execute()
}
