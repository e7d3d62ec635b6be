package init

import (
	"github.com/DE-labtory/coinflip/config"
	"github.com/kyokomi/emoji"
	"github.com/urfave/cli"
)

func Cmd() cli.Command {
	return cli.Command{
		Name:      "init",
		Usage:     "Initialize coinflip configuration",
		UsageText: "coinflip init [--config FILE_PATH]",
		Flags: []cli.Flag{
			cli.StringFlag{
				Name:  "config",
				Usage: "Load configuration file from FILE_PATH",
			},
		},
		Action: func(c *cli.Context) error {
			return initCoinflip(c.String("config"))
		},
	}
}

func initCoinflip(configPath string) error {
	if err := config.Init(configPath); err != nil {
		emoji.Println(":broken_heart: initialize failed with error:", err)
		return err
	}
	emoji.Printf(":beer: successfully initialized at %s\n", config.Path())
	return nil
}
