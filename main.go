package main

import "rental-app/cmd"

func main() {
	cmd.Execute()
}
