package main

import "github.com/crosslock/fusion-gateway/cmd"

func main() {
	cmd.Execute()
}
