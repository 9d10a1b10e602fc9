package main

import "github.com/sohamshirke10/recruiter-bandhu/internal/cli"

func main() {
	cli.Execute()
}
