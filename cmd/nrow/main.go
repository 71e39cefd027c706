package main

import "github.com/mcoot/nrowgame/internal/cli"

func main() {
	cli.Execute()
}
