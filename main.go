package main

import "autosuggest/cmd"

func main() {
	cmd.Execute()
}
