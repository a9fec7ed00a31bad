package main

import "github.com/SumoLogic-Labs/graceful-shutdown/cmd"

func main() {
	cmd.Execute()
}
