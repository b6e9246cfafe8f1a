package main

import "rulesplit/internal/cli"

func main() {
	cli.Execute()
}
