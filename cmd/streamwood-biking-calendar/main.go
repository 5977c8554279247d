package main

import "github.com/MikieMSC/streamwood-biking-calendar/internal/cli"

func main() {
	cli.Execute()
}
