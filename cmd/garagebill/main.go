package main

import (
	"context"
	"fmt"
	"os"

	"github.com/andy/garagebill/internal/app"
	"github.com/andy/garagebill/internal/cli"
)

func main() {
	os.Exit(run())
}

// run keeps deferred cleanup ahead of os.Exit
func run() int {
	// If the user asked for help, avoid initializing the full app
	skipInit := false
	for _, a := range os.Args[1:] {
		if a == "-h" || a == "--help" || a == "help" {
			skipInit = true
			break
		}
	}

	if !skipInit {
		ctx := context.Background()
		a, err := app.New(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to initialize app: %v\n", err)
			return 1
		}
		defer a.Close()
		cli.SetApp(a)
	}

	if err := cli.Execute(); err != nil {
		return 1
	}
	return 0
}
