package main

import (
	"os"

	"github.com/sandeepkv93/tasklist/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
