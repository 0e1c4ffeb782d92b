package main

import "github.com/gopak/mgrep/cmd"

func main() {
	cmd.Main()
}
