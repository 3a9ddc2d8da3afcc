package main

import (
	"github.com/aunum/log"
	"github.com/samuelfneumann/ddqn/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
