package main

import "github.com/oshokin/project-archiver/cmd/project-archiver/cmd"

func main() {
	cmd.Execute()
}
