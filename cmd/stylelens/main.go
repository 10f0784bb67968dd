package main

import (
	"stylelens/internal/cli"
)

func main() {
	cli.Execute()
}
