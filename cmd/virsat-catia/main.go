package main

import "virsat-catia/internal/cli"

func main() {
	cli.Execute()
}
