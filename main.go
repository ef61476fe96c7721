package main

import "github.com/skumarhv16/ai-powered-mysql-assistant/cmd"

func main() {
	cmd.Execute()
}
