package main

import "github.com/ppiankov/routegate/internal/cli"

func main() {
	cli.Execute()
}
