package main

import "focusband/companion/cmd/wristd/cmd"

func main() {
	cmd.Execute()
}
