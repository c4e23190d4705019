package main

import (
	"context"
	"fmt"
	"os"

	"github.com/leohubert/go-omdb/cmd"
	"go.uber.org/zap"
)

func main() {
	cmdName := "api"
	if len(os.Args) >= 2 {
		cmdName = os.Args[1]
	}

	ctx, env, services, cleanup := cmd.Bootstrap(context.Background())
	defer cleanup()

	switch cmdName {
	case "api":
		cmd.ApiCmd(ctx, env, services)

	case "lookup":
		if err := cmd.LookupCmd(ctx, services, os.Args[2:], os.Stdout); err != nil {
			services.Logger.Error("lookup failed", zap.Error(err))
			cleanup()
			os.Exit(1)
		}

	default:
		panic(fmt.Errorf("unknown command %s", cmdName))
	}
}
