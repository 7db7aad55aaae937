package main

import (
	"gobd2/cmd"
)

func main() {
	cmd.Execute()
}
