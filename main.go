// main hands off to the cobra command tree rooted in cmd/root.go.

package main

import (
	"github.com/eigenmc/eigenmc/cmd"
)

func main() {
	cmd.Execute()
}
