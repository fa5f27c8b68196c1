package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	ctx := context.Background()

	cmd := NewRootCommand()
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
