package main

import "github.com/vulnissimo/vulnissimo/cmd"

func main() {
	cmd.Execute()
}
