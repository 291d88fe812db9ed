package ingest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/wonny/almanac/internal/contracts"
	"github.com/wonny/almanac/internal/normalize"
	"github.com/wonny/almanac/pkg/httputil"
	"github.com/wonny/almanac/pkg/logger"
)

// HTMLFetcher pulls standings out of a league almanac HTML export when
// no CSV extract is available. The almanac pages carry the same table,
// just wrapped in markup.
type HTMLFetcher struct {
	client *httputil.Client
	logger *logger.Logger
}

// NewHTMLFetcher creates an HTML standings fetcher
func NewHTMLFetcher(client *httputil.Client, log *logger.Logger) *HTMLFetcher {
	return &HTMLFetcher{client: client, logger: log}
}

// Standings fetches and normalizes a standings table from an almanac URL
func (f *HTMLFetcher) Standings(ctx context.Context, url string) ([]contracts.EntityRecord, error) {
	body, err := f.client.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch standings: %w", err)
	}

	table, err := ParseStandingsHTML(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("standings page %s: %w", url, err)
	}

	n := normalize.New(TeamAliases(), "team_id")
	records, err := n.Normalize(table)
	if err != nil {
		return nil, fmt.Errorf("standings page %s: %w", url, err)
	}

	f.logger.WithFields(map[string]interface{}{
		"url":     url,
		"records": len(records),
	}).Debug("Parsed HTML standings")

	return records, nil
}

// ParseStandingsHTML extracts the first table with a header row into a
// raw Table. Header cells become raw column names; alias resolution
// happens downstream like any other extract.
func ParseStandingsHTML(r io.Reader) (*normalize.Table, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var table *normalize.Table
	doc.Find("table").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		header := headerCells(sel)
		if len(header) == 0 {
			return true // keep looking
		}

		t := &normalize.Table{Columns: header}
		sel.Find("tr").Each(func(_ int, row *goquery.Selection) {
			cells := row.Find("td")
			if cells.Length() == 0 {
				return // header or spacer row
			}
			m := make(map[string]string, len(header))
			cells.Each(func(i int, cell *goquery.Selection) {
				if i < len(header) {
					m[header[i]] = strings.TrimSpace(cell.Text())
				}
			})
			t.Rows = append(t.Rows, m)
		})

		if len(t.Rows) > 0 {
			table = t
			return false
		}
		return true
	})

	if table == nil {
		return nil, fmt.Errorf("no standings table found in document")
	}
	return table, nil
}

// headerCells reads th cells from the first row that has any
func headerCells(sel *goquery.Selection) []string {
	var header []string
	sel.Find("tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		ths := row.Find("th")
		if ths.Length() == 0 {
			return true
		}
		ths.Each(func(_ int, cell *goquery.Selection) {
			header = append(header, strings.TrimSpace(cell.Text()))
		})
		return false
	})
	return header
}
