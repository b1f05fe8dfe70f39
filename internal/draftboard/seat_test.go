package draftboard

import (
	"errors"
	"testing"

	"github.com/sam-maryland/sleeper-draft-assistant/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeatOf_TenTeamSnake(t *testing.T) {
	topology := model.DraftTopology{TeamCount: 10, RoundCount: 2, Type: model.Snake}

	tests := []struct {
		pick int
		want model.Seat
	}{
		{pick: 1, want: model.Seat{TeamIndex: 0, Round: 1}},
		{pick: 10, want: model.Seat{TeamIndex: 9, Round: 1}},
		{pick: 11, want: model.Seat{TeamIndex: 9, Round: 2}},
		{pick: 12, want: model.Seat{TeamIndex: 8, Round: 2}},
		{pick: 20, want: model.Seat{TeamIndex: 0, Round: 2}},
	}
	for _, tt := range tests {
		got, err := SeatOf(tt.pick, topology)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "pick %d", tt.pick)
	}
}

func TestSeatOf_Linear(t *testing.T) {
	topology := model.DraftTopology{TeamCount: 4, RoundCount: 3, Type: model.Linear}

	seat, err := SeatOf(5, topology)
	require.NoError(t, err)
	assert.Equal(t, model.Seat{TeamIndex: 0, Round: 2}, seat)

	seat, err = SeatOf(8, topology)
	require.NoError(t, err)
	assert.Equal(t, model.Seat{TeamIndex: 3, Round: 2}, seat)
}

func TestSeatOf_Invalid(t *testing.T) {
	var verr *model.ValidationError

	_, err := SeatOf(0, model.DraftTopology{TeamCount: 10, RoundCount: 15, Type: model.Snake})
	assert.True(t, errors.As(err, &verr))

	_, err = SeatOf(1, model.DraftTopology{TeamCount: 0, RoundCount: 15, Type: model.Snake})
	assert.True(t, errors.As(err, &verr))

	_, err = SeatOf(1, model.DraftTopology{TeamCount: 10, RoundCount: 15, Type: "auction"})
	assert.True(t, errors.As(err, &verr))
}

func TestSeatOf_FullBoardCoverage(t *testing.T) {
	for _, draftType := range []model.DraftType{model.Snake, model.Linear} {
		for teams := 1; teams <= 14; teams++ {
			topology := model.DraftTopology{TeamCount: teams, RoundCount: 16, Type: draftType}
			owned := make(map[int][]int)
			for pick := 1; pick <= teams*16; pick++ {
				seat, err := SeatOf(pick, topology)
				require.NoError(t, err)
				owned[seat.TeamIndex] = append(owned[seat.TeamIndex], pick)

				back, err := PickNumberOf(seat, topology)
				require.NoError(t, err)
				assert.Equal(t, pick, back, "inverse of pick %d", pick)
			}

			require.Len(t, owned, teams)
			for team, picks := range owned {
				assert.Len(t, picks, 16, "team %d in %d-team %s", team, teams, draftType)
				for i := 1; i < len(picks); i++ {
					assert.Less(t, picks[i-1], picks[i])
				}
			}
		}
	}
}

func TestPicksForTeam(t *testing.T) {
	topology := model.DraftTopology{TeamCount: 12, RoundCount: 4, Type: model.Snake}

	picks, err := PicksForTeam(0, topology)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 24, 25, 48}, picks)

	_, err = PicksForTeam(12, topology)
	assert.Error(t, err)
}
