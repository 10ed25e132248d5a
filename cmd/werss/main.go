package main

import "github.com/wetrycode/werss/cmd"

func main() {
	cmd.Execute()
}
