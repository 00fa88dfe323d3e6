// Command dlctl inspects a demon list from the terminal.
package main

import "github.com/SaQreeZ/SaQreeZ-Challenge-List/internal/cli"

func main() {
	cli.Execute()
}
