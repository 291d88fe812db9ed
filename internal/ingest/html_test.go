package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const standingsPage = `
<html><body>
<h1>League Standings</h1>
<table>
  <tr><th>team_id</th><th>team_name</th><th>W</th><th>L</th><th>RS</th><th>RA</th></tr>
  <tr><td>7</td><td> NYK Knights </td><td>60</td><td>40</td><td>520</td><td>480</td></tr>
  <tr><td>9</td><td>BOS Harbormen</td><td>55</td><td>45</td><td>490</td><td>470</td></tr>
</table>
</body></html>`

func TestParseStandingsHTML(t *testing.T) {
	table, err := ParseStandingsHTML(strings.NewReader(standingsPage))
	require.NoError(t, err)

	assert.Equal(t, []string{"team_id", "team_name", "W", "L", "RS", "RA"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "NYK Knights", table.Rows[0]["team_name"])
	assert.Equal(t, "60", table.Rows[0]["W"])
	assert.Equal(t, "9", table.Rows[1]["team_id"])
}

func TestParseStandingsHTML_SkipsDecorativeTables(t *testing.T) {
	page := `
<html><body>
<table><tr><td>just a layout cell</td></tr></table>
<table>
  <tr><th>team_id</th><th>W</th></tr>
  <tr><td>7</td><td>60</td></tr>
</table>
</body></html>`

	table, err := ParseStandingsHTML(strings.NewReader(page))
	require.NoError(t, err)
	assert.Equal(t, []string{"team_id", "W"}, table.Columns)
	require.Len(t, table.Rows, 1)
}

func TestParseStandingsHTML_NoTable(t *testing.T) {
	_, err := ParseStandingsHTML(strings.NewReader("<html><body><p>nothing here</p></body></html>"))
	assert.Error(t, err)
}
