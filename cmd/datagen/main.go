package main

import "github.com/imraghavojha/enigma-ml-cryptanalysis/internal/cli"

func main() {
	cli.Execute()
}
