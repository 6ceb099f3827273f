package command

import (
	"context"
	"fmt"
	"strings"

	"coinboard/internal/domain/entity"
	"coinboard/internal/pkg/utils"

	"github.com/shopspring/decimal"
	clipkg "github.com/urfave/cli"
)

// ShowAsset prints the detail of one asset and a summary of its price chart.
func (cli *Client) ShowAsset(c *clipkg.Context) error {
	id := c.Args().First()
	if id == "" {
		return cli.errorOut(errMissingID)
	}
	rangeDays := entity.ChartRange(c.Int("days"))
	if rangeDays == 0 {
		rangeDays = entity.ChartRange(cli.Config.Dashboard.DefaultChartDays)
	}
	if rangeDays == 0 {
		rangeDays = entity.DefaultChartRange
	}
	if !rangeDays.Valid() {
		return cli.errorOut(fmt.Errorf("%w: unsupported range %d days", entity.ErrInvalidArgument, rangeDays))
	}

	app, err := cli.newApplication()
	if err != nil {
		return cli.errorOut(err)
	}
	defer app.Close()

	ctx := context.Background()
	detail, err := app.Market.AssetDetail(ctx, id)
	if err != nil {
		return cli.errorOut(fmt.Errorf("failed to load coin details: %w", err))
	}
	series, err := app.Market.Chart(ctx, id, rangeDays)
	if err != nil {
		return cli.errorOut(fmt.Errorf("failed to load chart data: %w", err))
	}

	fmt.Fprintf(cli.Writer, "%s (%s)  #%s\n", detail.Name, strings.ToUpper(detail.Symbol), rankString(detail.MarketCapRank))
	if summary := detail.Summary(); summary != "" {
		fmt.Fprintln(cli.Writer, summary)
	}
	rows := [][]string{
		{"Price", utils.FormatUSD(detail.CurrentPrice)},
		{"24h Change", changeString(detail.PriceChangePercentage24h)},
		{"24h High", utils.FormatUSD(detail.High24h)},
		{"24h Low", utils.FormatUSD(detail.Low24h)},
		{"Market Cap", utils.FormatCompactUSD(detail.MarketCap)},
		{"Volume", utils.FormatCompactUSD(detail.TotalVolume)},
		{"Circulating Supply", utils.FormatSupply(detail.CirculatingSupply)},
		{"Max Supply", utils.FormatSupply(detail.MaxSupply)},
		{rangeDays.Label() + " Chart", chartSummary(series)},
	}
	if app.Watchlist.Contains(detail.ID) {
		rows = append(rows, []string{"Watchlist", watchMark(true)})
	}
	return cli.renderTable([]string{"Field", "Value"}, rows)
}

// chartSummary describes the series by its first and last sample.
func chartSummary(series entity.ChartSeries) string {
	if len(series.Points) == 0 {
		return "no data"
	}
	first := series.Points[0].Price
	last := series.Points[len(series.Points)-1].Price
	text := fmt.Sprintf("%d points, %s -> %s", len(series.Points), utils.FormatUSD(first), utils.FormatUSD(last))
	if first.IsZero() {
		return text
	}
	change := last.Sub(first).Div(first).Mul(decimal.NewFromInt(100))
	return text + " " + changeString(change)
}
