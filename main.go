package main

import "github.com/amendoza/ritmo/cmd"

func main() {
	cmd.Execute()
}
