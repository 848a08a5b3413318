package main

import "github.com/writersguild/quill/cmd"

func main() {
	cmd.Execute()
}
