package command

import (
	clipkg "github.com/urfave/cli"
)

// NewApp builds the coinboard command tree around client.
func NewApp(client *Client) *clipkg.App {
	app := clipkg.NewApp()
	app.Name = "coinboard"
	app.Usage = "Crypto market dashboard backend"
	app.Flags = []clipkg.Flag{
		clipkg.StringFlag{
			Name:   "config, c",
			Usage:  "path to the YAML configuration file",
			Value:  "config/config.yml",
			EnvVar: "CONFIG_PATH",
		},
	}
	app.Before = client.loadConfig
	app.Action = client.RunServer
	app.Commands = []clipkg.Command{
		{
			Name:    "serve",
			Aliases: []string{"s"},
			Usage:   "Run the REST API",
			Action:  client.RunServer,
		},
		{
			Name:    "markets",
			Aliases: []string{"m"},
			Usage:   "Print one page of the market table",
			Flags: []clipkg.Flag{
				clipkg.IntFlag{Name: "page, p", Value: 1, Usage: "page number, starting at 1"},
				clipkg.StringFlag{Name: "sort", Value: "market_cap_desc", Usage: "market_cap_desc|market_cap_asc|price_desc|price_asc|percent_change_desc|percent_change_asc"},
				clipkg.StringFlag{Name: "search", Usage: "case-insensitive name or symbol filter"},
			},
			Action: client.ShowMarkets,
		},
		{
			Name:      "asset",
			Aliases:   []string{"a"},
			Usage:     "Print the detail and price chart summary of one asset",
			ArgsUsage: "ID",
			Flags: []clipkg.Flag{
				clipkg.IntFlag{Name: "days, d", Usage: "chart range in days: 1, 7, 30 or 90 (default from config)"},
			},
			Action: client.ShowAsset,
		},
		{
			Name:    "watchlist",
			Aliases: []string{"w"},
			Usage:   "Manage the persisted watchlist",
			Subcommands: []clipkg.Command{
				{Name: "list", Usage: "List watched asset ids", Action: client.ListWatchlist},
				{Name: "add", Usage: "Add ID to the watchlist", ArgsUsage: "ID", Action: client.AddToWatchlist},
				{Name: "remove", Usage: "Remove ID from the watchlist", ArgsUsage: "ID", Action: client.RemoveFromWatchlist},
				{Name: "toggle", Usage: "Add or remove ID", ArgsUsage: "ID", Action: client.ToggleWatchlist},
				{Name: "import", Usage: "Add every id listed in FILE", ArgsUsage: "FILE", Action: client.ImportWatchlist},
			},
		},
	}
	return app
}
