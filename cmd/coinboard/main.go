package main

import (
	"os"

	"coinboard/internal/command"
	"coinboard/internal/pkg/logger"
)

func main() {
	client := &command.Client{
		Writer:     os.Stdout,
		AppFactory: command.CoinboardAppFactory{},
	}
	if err := command.NewApp(client).Run(os.Args); err != nil {
		logger.Fatal("coinboard failed", "error", err)
	}
}
