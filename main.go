package main

import (
	"github.com/axellelanca/refcheck/cmd"
	_ "github.com/axellelanca/refcheck/cmd/cli"
	_ "github.com/axellelanca/refcheck/cmd/server"
)

func main() {
	cmd.Execute()
}
