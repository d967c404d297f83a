package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOutcome(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Outcome
		wantErr bool
	}{
		{name: "player", input: "PLAYER", want: OutcomePlayer},
		{name: "banker", input: "BANKER", want: OutcomeBanker},
		{name: "tie", input: "TIE", want: OutcomeTie},
		{name: "lowercase", input: "player", want: OutcomePlayer},
		{name: "mixed case with spaces", input: " Banker ", want: OutcomeBanker},
		{name: "empty", input: "", wantErr: true},
		{name: "unknown", input: "DRAGON", wantErr: true},
		{name: "partial", input: "PLAY", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseOutcome(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidOutcome)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOutcomeCodes(t *testing.T) {
	assert.Equal(t, 2, OutcomePlayer.Code())
	assert.Equal(t, 3, OutcomeBanker.Code())
	assert.Equal(t, 5, OutcomeTie.Code())

	for _, outcome := range []Outcome{OutcomePlayer, OutcomeBanker, OutcomeTie} {
		got, ok := OutcomeForCode(outcome.Code())
		require.True(t, ok)
		assert.Equal(t, outcome, got)
	}

	_, ok := OutcomeForCode(8)
	assert.False(t, ok)
}

func TestOutcomeOpposite(t *testing.T) {
	opp, ok := OutcomePlayer.Opposite()
	require.True(t, ok)
	assert.Equal(t, OutcomeBanker, opp)

	opp, ok = OutcomeBanker.Opposite()
	require.True(t, ok)
	assert.Equal(t, OutcomePlayer, opp)

	_, ok = OutcomeTie.Opposite()
	assert.False(t, ok)
}
