package main

import "github.com/ValentinKolb/sfc/cmd"

func main() {
	cmd.Execute()
}
