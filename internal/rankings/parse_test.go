package rankings

import (
	"errors"
	"strings"
	"testing"

	"github.com/sam-maryland/sleeper-draft-assistant/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV(t *testing.T) {
	input := "\ufeffRK,TIERS,PLAYER NAME,TEAM,POS,BYE WEEK\n" +
		"3,1,Justin Jefferson,min,WR1,6\n" +
		"1,1,Christian McCaffrey,SF,RB1,9\n" +
		"2,,Ja'Marr Chase,CIN,WR2,12\n" +
		",,Unranked Guy,FA,TE,\n" +
		"40,,Linebacker Larry,NYG,LB1,11\n" +
		"61,,Brandon Aubrey,DAL,PK,7\n" +
		",,,,,\n"

	entries, rejected, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 2, rejected)
	require.Len(t, entries, 5)

	assert.Equal(t, "Christian McCaffrey", entries[0].Name)
	assert.Equal(t, 1, entries[0].PositionRank)

	jj := entries[2]
	assert.Equal(t, "Justin Jefferson", jj.Name)
	assert.Equal(t, "MIN", jj.Team)
	assert.Equal(t, model.WR, jj.Position)
	assert.Equal(t, 1, jj.PositionRank)
	assert.Equal(t, 6, jj.ByeWeek)

	assert.Equal(t, 1, entries[1].Tier, "tier derived from rank 2")
	assert.Equal(t, model.K, entries[3].Position)
	assert.Equal(t, 5, entries[3].Tier)

	last := entries[4]
	assert.Equal(t, "Unranked Guy", last.Name)
	assert.False(t, last.HasRank())
	assert.Equal(t, 0, last.Tier)
	assert.Equal(t, 1, last.PositionRank)
}

func TestParseCSV_MissingColumns(t *testing.T) {
	_, _, err := ParseCSV(strings.NewReader("Rank,Team\n1,KC\n"))
	var verr *model.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "header", verr.Field)

	_, _, err = ParseCSV(strings.NewReader(""))
	assert.True(t, errors.As(err, &verr))
}

func TestParseCSV_Points(t *testing.T) {
	entries, _, err := ParseCSV(strings.NewReader("Player,Position,Rank,FPTS\nJosh Allen,QB,5,380.5\n"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 380.5, entries[0].ProjectedPoints)
}

func TestParseHTML(t *testing.T) {
	page := `<html><body>
<h1>Cheat Sheet</h1>
<table id="ranking-table">
  <thead><tr><th>Rank</th><th>Player</th><th>Pos</th><th>Team</th><th>Bye</th></tr></thead>
  <tbody>
    <tr><td>2</td><td><a href="#">Bijan   Robinson</a></td><td>RB2</td><td>ATL</td><td>5</td></tr>
    <tr><td>1</td><td>CeeDee Lamb</td><td>WR1</td><td>DAL</td><td>7</td></tr>
    <tr><td>3</td><td>Team Defense</td><td>DST</td><td>BAL</td><td>14</td></tr>
  </tbody>
</table>
<table><tr><th>Rank</th><th>Player</th><th>Pos</th></tr><tr><td>1</td><td>Ignored</td><td>QB</td></tr></table>
</body></html>`

	entries, rejected, err := ParseHTML(strings.NewReader(page))
	require.NoError(t, err)
	assert.Equal(t, 0, rejected)
	require.Len(t, entries, 3)

	assert.Equal(t, "CeeDee Lamb", entries[0].Name)
	assert.Equal(t, "Bijan Robinson", entries[1].Name)
	assert.Equal(t, 2, entries[1].PositionRank)
	assert.Equal(t, model.DEF, entries[2].Position)
	assert.Equal(t, 14, entries[2].ByeWeek)
}

func TestParseHTML_NoTable(t *testing.T) {
	_, _, err := ParseHTML(strings.NewReader("<p>nothing here</p>"))
	var verr *model.ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestParseFormatKey(t *testing.T) {
	tests := []struct {
		raw     string
		want    model.FormatKey
		wantErr bool
	}{
		{raw: "FantasyPros_Rankings_half_ppr_superflex.csv", want: model.FormatKey{Scoring: model.HalfPPR, Lineup: model.LineupSuperflex}},
		{raw: "FantasyPros_Rankings_PPR_Standard.csv", want: model.FormatKey{Scoring: model.PPR, Lineup: model.LineupStandard}},
		{raw: "standard_standard", want: model.FormatKey{Scoring: model.Standard, Lineup: model.LineupStandard}},
		{raw: "half-ppr-superflex", want: model.FormatKey{Scoring: model.HalfPPR, Lineup: model.LineupSuperflex}},
		{raw: "my_custom_sheet.csv", wantErr: true},
		{raw: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseFormatKey(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTierForRank(t *testing.T) {
	cases := map[int]int{0: 0, 1: 1, 12: 1, 13: 2, 24: 2, 36: 3, 37: 4, 60: 4, 61: 5, 300: 5}
	for rank, tier := range cases {
		assert.Equal(t, tier, TierForRank(rank), "rank %d", rank)
	}
}
