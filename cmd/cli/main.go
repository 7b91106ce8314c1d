package main

import (
	"context"
	"log"
	"os"

	"github.com/creatorlink/creatorlink/internal/buildinfo"
	"github.com/creatorlink/creatorlink/internal/client/cli"
	"github.com/creatorlink/creatorlink/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
