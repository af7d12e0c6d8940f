package main

import (
	"context"
	"os"

	"github.com/thenoetrevino/lanes/cmd"
)

func main() {
	os.Exit(cmd.Execute(context.Background(), os.Args[1:]))
}
