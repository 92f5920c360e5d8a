package main

import (
	"github.com/custodia-labs/askdocs/internal/adapters/driving/cli"
)

func main() {
	cli.Execute()
}
