package main

import "studentkeeper/cmd/client/cmd"

func main() {
	cmd.Execute()
}
