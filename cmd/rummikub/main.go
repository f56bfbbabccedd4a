package main

import "rummikub/internal/cli"

func main() {
	cli.Execute()
}
