package main

import "inventory/cmd"

func main() {
	cmd.Execute()
}
