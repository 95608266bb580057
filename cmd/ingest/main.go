package main

import "github.com/docstream/ingest/cmd/ingest/cmd"

func main() {
	cmd.Execute()
}
