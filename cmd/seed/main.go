package main

import "unionhub/cmd/seed/command"

func main() {
	command.Execute()
}
