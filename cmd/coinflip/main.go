package main

import (
	"log"
	"os"
	"time"

	initCmd "github.com/DE-labtory/coinflip/cmd/coinflip/init"
	"github.com/DE-labtory/coinflip/cmd/coinflip/start"
	"github.com/DE-labtory/coinflip/cmd/coinflip/token"
	"github.com/urfave/cli"
)

func main() {
	app := cli.NewApp()
	app.Name = "coinflip"
	app.Version = "0.0.1"
	app.Compiled = time.Now()
	app.Usage = "per-account coin tossing game over a bounded coin store"
	app.UsageText = "coinflip [options] command [command options] [arguments...]"
	app.Authors = []cli.Author{
		{
			Name:  "DE-labtory",
			Email: "de.labtory@gmail.com",
		},
	}
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "debug, d",
			Usage: "set debug mode",
		},
	}

	app.Commands = []cli.Command{}
	app.Commands = append(app.Commands, initCmd.Cmd())
	app.Commands = append(app.Commands, start.Cmd())
	app.Commands = append(app.Commands, token.Cmd())

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}
