package main

import "food-ordering-api/cmd"

func main() {
	cmd.Execute()
}
