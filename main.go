package main

import "github.com/moranmiz/Cooking-Up-Creativity/cmd"

func main() {
	cmd.Execute()
}
