package main

import "github.com/oshokin/pandora-installer/cmd/pandora-installer/cmd"

func main() {
	cmd.Execute()
}
