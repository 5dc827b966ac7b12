package main

import "github.com/emiliopalmerini/brandkit/internal/cli"

func main() {
	cli.Execute()
}
