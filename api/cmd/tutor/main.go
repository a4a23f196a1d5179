package main

import "tutor-bot/api/internal/cli"

func main() {
	cli.Execute()
}
