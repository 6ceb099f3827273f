package watchlistloader

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"coinboard/internal/pkg/utils"
)

// WatchlistFileLoader reads asset ids to import into the watchlist.
// Plain files hold one id per line with '#' comments; *.json files hold a JSON array of ids.
type WatchlistFileLoader struct {
	filePath   string
	loggerInfo func(msg string, args ...any)
}

// NewWatchlistFileLoader creates a new WatchlistFileLoader.
func NewWatchlistFileLoader(filePath string, loggerInfo func(msg string, args ...any)) *WatchlistFileLoader {
	return &WatchlistFileLoader{
		filePath:   filePath,
		loggerInfo: loggerInfo,
	}
}

// GetIDs returns the distinct valid ids in file order.
func (l *WatchlistFileLoader) GetIDs() ([]string, error) {
	var raw []string
	if strings.EqualFold(filepath.Ext(l.filePath), ".json") {
		ids, err := utils.LoadJSON[[]string](l.filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to load watchlist file %s: %w", l.filePath, err)
		}
		raw = ids
	} else {
		ids, err := l.scanLines()
		if err != nil {
			return nil, err
		}
		raw = ids
	}

	var ids []string
	for _, id := range utils.UniqueStrings(raw) {
		if !validID(id) {
			if l.loggerInfo != nil {
				l.loggerInfo("Skipping invalid asset id", "file", l.filePath, "id", id)
			}
			continue
		}
		ids = append(ids, id)
	}

	if l.loggerInfo != nil {
		l.loggerInfo("Watchlist ids loaded successfully from file", "count", len(ids), "path", l.filePath)
	}
	return ids, nil
}

func (l *WatchlistFileLoader) scanLines() ([]string, error) {
	file, err := os.Open(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open watchlist file %s: %w", l.filePath, err)
	}
	defer file.Close()

	var ids []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ids = append(ids, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error scanning watchlist file %s: %w", l.filePath, err)
	}
	return ids, nil
}

// validID accepts provider ids such as "bitcoin" or "usd-coin".
func validID(id string) bool {
	return id != "" && !strings.ContainsAny(id, " \t,;/?#")
}
