package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/poolkeeper/internal/poolctl"
)

func main() {

	ctx := context.Background()
	args := os.Args[1:]
	cfg := poolctl.LoadConfig(args)
	cmd, _ := poolctl.Command(args)

	app, err := poolctl.NewApp(ctx, cfg, os.Stdin, os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer app.Close()

	if err := app.Run(ctx, cmd); err != nil {
		fmt.Fprintln(os.Stderr, err)
		app.Close()
		os.Exit(1)
	}

}
