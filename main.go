package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Tanmay7310/Mental-Health-Wellbeing/cmd"
)

func main() {
	if err := cmd.NewRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
