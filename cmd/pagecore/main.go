package main

import (
	"os"

	"github.com/xxld0125/low-code-ai-sub004/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
