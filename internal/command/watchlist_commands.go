package command

import (
	"errors"
	"fmt"

	"coinboard/internal/infrastructure/watchlistloader"
	"coinboard/internal/pkg/logger"

	clipkg "github.com/urfave/cli"
)

var errMissingID = errors.New("an asset id argument is required")

// ListWatchlist prints the watched ids, one per line.
func (cli *Client) ListWatchlist(c *clipkg.Context) error {
	app, err := cli.newApplication()
	if err != nil {
		return cli.errorOut(err)
	}
	defer app.Close()

	ids := app.Watchlist.IDs()
	if len(ids) == 0 {
		fmt.Fprintln(cli.Writer, "Your watchlist is empty")
		return nil
	}
	for _, id := range ids {
		fmt.Fprintln(cli.Writer, id)
	}
	return nil
}

func (cli *Client) AddToWatchlist(c *clipkg.Context) error {
	id := c.Args().First()
	if id == "" {
		return cli.errorOut(errMissingID)
	}
	app, err := cli.newApplication()
	if err != nil {
		return cli.errorOut(err)
	}
	defer app.Close()

	if err := app.Watchlist.Add(id); err != nil {
		return cli.errorOut(err)
	}
	fmt.Fprintf(cli.Writer, "Added %s to watchlist\n", id)
	return nil
}

func (cli *Client) RemoveFromWatchlist(c *clipkg.Context) error {
	id := c.Args().First()
	if id == "" {
		return cli.errorOut(errMissingID)
	}
	app, err := cli.newApplication()
	if err != nil {
		return cli.errorOut(err)
	}
	defer app.Close()

	if err := app.Watchlist.Remove(id); err != nil {
		return cli.errorOut(err)
	}
	fmt.Fprintf(cli.Writer, "Removed %s from watchlist\n", id)
	return nil
}

func (cli *Client) ToggleWatchlist(c *clipkg.Context) error {
	id := c.Args().First()
	if id == "" {
		return cli.errorOut(errMissingID)
	}
	app, err := cli.newApplication()
	if err != nil {
		return cli.errorOut(err)
	}
	defer app.Close()

	added, err := app.Watchlist.Toggle(id)
	if err != nil {
		return cli.errorOut(err)
	}
	if added {
		fmt.Fprintf(cli.Writer, "Added %s to watchlist\n", id)
	} else {
		fmt.Fprintf(cli.Writer, "Removed %s from watchlist\n", id)
	}
	return nil
}

// ImportWatchlist adds every id listed in the given file.
func (cli *Client) ImportWatchlist(c *clipkg.Context) error {
	path := c.Args().First()
	if path == "" {
		return cli.errorOut(errors.New("a file argument is required"))
	}
	app, err := cli.newApplication()
	if err != nil {
		return cli.errorOut(err)
	}
	defer app.Close()

	ids, err := watchlistloader.NewWatchlistFileLoader(path, logger.NewSlogAdapter("watchlist_import").Info).GetIDs()
	if err != nil {
		return cli.errorOut(err)
	}
	added := 0
	for _, id := range ids {
		if app.Watchlist.Contains(id) {
			continue
		}
		if err := app.Watchlist.Add(id); err != nil {
			return cli.errorOut(err)
		}
		added++
	}
	fmt.Fprintf(cli.Writer, "Imported %d of %d ids, watchlist now has %d\n", added, len(ids), app.Watchlist.Len())
	return nil
}
