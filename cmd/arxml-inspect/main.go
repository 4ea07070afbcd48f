package main

import "arxml-inspect/internal/cli"

func main() {
	cli.Execute()
}
