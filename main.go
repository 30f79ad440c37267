package main

import "github.com/jfmyers9/skipboi/cmd"

func main() {
	cmd.Execute()
}
