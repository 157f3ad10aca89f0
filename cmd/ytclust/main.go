package main

import "ytclust/internal/cli"

func main() {
	cli.Execute()
}
