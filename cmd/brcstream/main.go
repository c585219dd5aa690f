package main

import "github.com/aalvaropc/brcstream/internal/cli"

func main() {
	cli.Execute()
}
