package main

import (
	"github.com/aahabhisheksingh/studyhub-api/cmd"
)

func main() {
	cmd.Execute()
}
