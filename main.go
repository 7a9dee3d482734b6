package main

import "github.com/ska-sa/rfireport/pkg/cli"

func main() {
	cli.Execute()
}
