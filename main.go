package main

import "acc-portal/cmd"

func main() {
	cmd.Execute()
}
