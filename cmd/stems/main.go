package main

import "github.com/tessro/stems/internal/cli"

func main() {
	cli.Execute()
}
