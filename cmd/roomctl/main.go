package main

import "github.com/mcoot/gamerooms/internal/cli"

func main() {
	cli.Execute()
}
