package command

import (
	"context"
	"fmt"
	"strconv"

	"coinboard/internal/domain/entity"
	"coinboard/internal/pkg/utils"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"
	clipkg "github.com/urfave/cli"
)

// ShowMarkets prints one page of the market table.
func (cli *Client) ShowMarkets(c *clipkg.Context) error {
	app, err := cli.newApplication()
	if err != nil {
		return cli.errorOut(err)
	}
	defer app.Close()

	sortKey, err := entity.ParseSortKey(c.String("sort"))
	if err != nil {
		return cli.errorOut(err)
	}
	page := c.Int("page")
	if page < 1 {
		page = 1
	}
	spec := entity.FilterSpec{Search: c.String("search"), SortKey: sortKey}

	entries, err := app.Market.Page(context.Background(), page, app.Config.Dashboard.PageSize, spec)
	if err != nil {
		return cli.errorOut(fmt.Errorf("failed to fetch market data: %w", err))
	}
	if len(entries) == 0 {
		fmt.Fprintln(cli.Writer, "No coins found")
		return nil
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			rankString(e.MarketCapRank),
			e.Name,
			e.Symbol,
			utils.FormatUSD(e.CurrentPrice),
			changeString(e.PriceChangePercentage24h),
			utils.FormatCompactUSD(e.MarketCap),
			utils.FormatCompactUSD(e.TotalVolume),
			watchMark(app.Watchlist.Contains(e.ID)),
		})
	}
	return cli.renderTable([]string{"#", "Name", "Symbol", "Price", "24h %", "Market Cap", "Volume", "Watch"}, rows)
}

func rankString(rank *int) string {
	if rank == nil {
		return "-"
	}
	return strconv.Itoa(*rank)
}

func changeString(change decimal.Decimal) string {
	if change.IsNegative() {
		return color.New(color.FgRed).Sprint("▼ " + utils.FormatPercent(change))
	}
	return color.New(color.FgGreen).Sprint("▲ " + utils.FormatPercent(change))
}

func watchMark(watched bool) string {
	if watched {
		return "★"
	}
	return ""
}
