package main

import "github.com/KaramelBytes/cashviz/cmd"

func main() {
	cmd.Execute()
}
