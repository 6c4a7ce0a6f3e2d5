/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import (
	"github.com/linkedvault/linkedvault/cmd/linkedvault/cmd"
)

func main() {
	cmd.Execute()
}
