package main

import "github.com/ZacxDev/storefront-sections/cmd"

func main() {
	cmd.Execute()
}
