package main

import "github.com/andrescamacho/factory-planner-go/internal/adapters/cli"

func main() {
	cli.Execute()
}
