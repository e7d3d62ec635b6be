package token

import (
	"errors"
	"fmt"

	"github.com/DE-labtory/coinflip"
	"github.com/DE-labtory/coinflip/auth"
	"github.com/DE-labtory/coinflip/config"
	"github.com/urfave/cli"
)

func Cmd() cli.Command {
	return cli.Command{
		Name:      "token",
		Usage:     "Issue a bearer token for an account",
		UsageText: "coinflip token --account ACCOUNT_ID",
		Flags: []cli.Flag{
			cli.StringFlag{
				Name:  "account",
				Usage: "account id the token is issued for",
			},
		},
		Action: func(c *cli.Context) error {
			return issueToken(c.String("account"))
		},
	}
}

func issueToken(account string) error {
	if account == "" {
		return errors.New("--account is required")
	}

	conf, err := config.Load(config.Path())
	if err != nil {
		return err
	}
	authenticator, err := auth.New(conf.Auth.Secret, conf.Auth.TokenTTL)
	if err != nil {
		return err
	}
	token, err := authenticator.Issue(coinflip.AccountID(account))
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}
