package main

import "github.com/bizexpense/expense-manager/cmd"

func main() {
	cmd.Execute()
}
