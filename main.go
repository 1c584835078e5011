package main

import "ringseq/cmd"

func main() {
	cmd.Execute()
}
