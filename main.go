package main

import "admin-dashboard/cmd"

func main() {
	cmd.Execute()
}
