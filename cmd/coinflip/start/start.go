package start

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/DE-labtory/coinflip/config"
	"github.com/DE-labtory/coinflip/core"
	"github.com/DE-labtory/coinflip/log"
	"github.com/kyokomi/emoji"
	"github.com/urfave/cli"
)

func Cmd() cli.Command {
	return cli.Command{
		Name:  "start",
		Usage: "coinflip start",
		Action: func(c *cli.Context) error {
			return startCoinflip(c.GlobalBool("debug"))
		},
	}
}

func startCoinflip(debug bool) error {
	conf, err := config.Load(config.Path())
	if err != nil {
		emoji.Println(":broken_heart: run `coinflip init` first:", err)
		return err
	}

	lvl := conf.Log.Level
	if debug {
		lvl = "debug"
	}
	if err := log.SetLevel(lvl); err != nil {
		return err
	}
	if conf.Log.FilePath != "" {
		if err := log.EnableFileLogger(true, conf.Log.FilePath); err != nil {
			return err
		}
	}

	node, err := core.New(conf)
	if err != nil {
		return err
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		log.Info("message", "shutting down")
		node.Close()
	}()

	emoji.Printf(":moneybag: coinflip listening on %s\n", conf.Identity.Address)
	return node.Run()
}
