package main

import "github.com/jjenkins/bulletin/cmd"

func main() {
	cmd.Execute()
}
