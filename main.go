package main

import "github.com/theirongolddev/fuelbook/cmd"

func main() {
	cmd.Execute()
}
