package main

import "taskonaut/internal/cli"

func main() {
	cli.Execute()
}
