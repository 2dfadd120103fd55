// Command blog is the command line client for the inkwell API.
package main

import "inkwell/internal/cli"

func main() {
	cli.Execute()
}
