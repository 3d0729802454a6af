package main

import (
	"github.com/dmitrijs2005/telephoto/internal/cli"
)

func main() {
	cli.Execute()
}
