package main

import "changeset-manager/cmd"

func main() {
	cmd.Execute()
}
