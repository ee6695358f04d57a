// package concerts reads the tabular concerts input for the setlist fetcher.
//
// A concerts file is a CSV table with columns Group, Day, Month, Year and
// optional JSON_Day, JSON_Month, JSON_Year override columns. Overrides fall
// back to the concert date field by field when a cell is empty.
package concerts

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/finallyfriday/encore/internal/models"
	"github.com/finallyfriday/encore/internal/shared"
)

// ReadFile parses a concerts CSV file into concert records, preserving row
// order. Rows are 1-based when referenced in output file names.
func ReadFile(path string) ([]models.Concert, error) {
	data, err := shared.VerifyAndReadFile(path)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s: %v", shared.ErrInvalidInput, path, err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", shared.ErrInvalidInput, path)
	}

	columns, err := headerIndex(records[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", shared.ErrInvalidInput, path, err)
	}

	concerts := make([]models.Concert, 0, len(records)-1)
	for i, record := range records[1:] {
		concert, err := parseRow(record, columns)
		if err != nil {
			return nil, fmt.Errorf("%w: %s row %d: %v", shared.ErrInvalidInput, path, i+1, err)
		}
		concerts = append(concerts, concert)
	}

	return concerts, nil
}

// headerIndex maps column names to positions, verifying the required ones.
func headerIndex(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}

	for _, required := range []string{"Group", "Day", "Month", "Year"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}

	return columns, nil
}

func parseRow(record []string, columns map[string]int) (models.Concert, error) {
	cell := func(name string) string {
		i, ok := columns[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	group := cell("Group")
	if group == "" {
		return models.Concert{}, fmt.Errorf("empty Group")
	}

	day, err := strconv.Atoi(cell("Day"))
	if err != nil {
		return models.Concert{}, fmt.Errorf("invalid Day: %v", err)
	}
	month, err := strconv.Atoi(cell("Month"))
	if err != nil {
		return models.Concert{}, fmt.Errorf("invalid Month: %v", err)
	}
	year, err := strconv.Atoi(cell("Year"))
	if err != nil {
		return models.Concert{}, fmt.Errorf("invalid Year: %v", err)
	}

	displayDay, err := override(cell("JSON_Day"), day)
	if err != nil {
		return models.Concert{}, fmt.Errorf("invalid JSON_Day: %v", err)
	}
	displayMonth, err := override(cell("JSON_Month"), month)
	if err != nil {
		return models.Concert{}, fmt.Errorf("invalid JSON_Month: %v", err)
	}
	displayYear, err := override(cell("JSON_Year"), year)
	if err != nil {
		return models.Concert{}, fmt.Errorf("invalid JSON_Year: %v", err)
	}

	return models.Concert{
		Group:       group,
		Date:        time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC),
		DisplayDate: time.Date(displayYear, time.Month(displayMonth), displayDay, 0, 0, 0, 0, time.UTC),
	}, nil
}

// override returns the fallback when the cell is empty, otherwise the
// parsed cell value.
func override(value string, fallback int) (int, error) {
	if value == "" {
		return fallback, nil
	}
	return strconv.Atoi(value)
}
