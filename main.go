package main

import "github.com/calcver/calcver/cmd"

func main() {
	cmd.Execute()
}
