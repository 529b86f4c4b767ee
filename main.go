package main

import "hypertask-mcp/cmd"

func main() {
	cmd.Execute()
}
