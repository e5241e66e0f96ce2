package main

import "adminhub/cmd/admin/cmd"

func main() {
	cmd.Execute()
}
