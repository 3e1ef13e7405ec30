package main

import "github.com/hoppxi/brightkeep/internal/cmd"

func main() {
	cmd.Execute()
}
