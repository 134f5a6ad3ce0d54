package main

import "github.com/lawateaditya/Stock-Management/cmd"

func main() {
	cmd.Execute()
}
