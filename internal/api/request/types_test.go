package request

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/gamerooms/internal/model"
)

func TestParseListRoomsQuery(t *testing.T) {
	q, err := ParseListRoomsQuery(url.Values{"gameType": {"wordpuzzle"}, "open": {"true"}})
	require.NoError(t, err)
	assert.Equal(t, string(model.GameTypeWordSearch), q.GameType)
	require.NotNil(t, q.Open)
	assert.True(t, *q.Open)

	q, err = ParseListRoomsQuery(url.Values{})
	require.NoError(t, err)
	assert.Empty(t, q.GameType)
	assert.Nil(t, q.Open)

	_, err = ParseListRoomsQuery(url.Values{"open": {"maybe"}})
	assert.ErrorIs(t, err, model.ErrInvalidRequest)

	_, err = ParseListRoomsQuery(url.Values{"gameType": {"chess"}})
	assert.ErrorIs(t, err, model.ErrUnknownGameType)
}

func TestListRoomsQuery_Matches(t *testing.T) {
	open, closed := true, false
	lobby := model.RoomSummary{GameType: model.GameTypeTrivia, PlayerCount: 1, MaxPlayers: 4}
	full := model.RoomSummary{GameType: model.GameTypeTrivia, PlayerCount: 4, MaxPlayers: 4}
	started := model.RoomSummary{GameType: model.GameTypeMafia, PlayerCount: 2, MaxPlayers: 8, GameStarted: true}

	assert.True(t, ListRoomsQuery{}.Matches(started))
	assert.True(t, ListRoomsQuery{GameType: "trivia"}.Matches(lobby))
	assert.False(t, ListRoomsQuery{GameType: "trivia"}.Matches(started))
	assert.True(t, ListRoomsQuery{Open: &open}.Matches(lobby))
	assert.False(t, ListRoomsQuery{Open: &open}.Matches(full))
	assert.False(t, ListRoomsQuery{Open: &open}.Matches(started))
	assert.True(t, ListRoomsQuery{Open: &closed}.Matches(full))
}
