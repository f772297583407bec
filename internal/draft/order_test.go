package draft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderPhase1(t *testing.T) {
	order := Order("blue", "red", 1)
	require.Len(t, order, 10)

	bans, picks := 0, 0
	for _, step := range order {
		switch step.Type {
		case Ban:
			bans++
		case Pick:
			picks++
		}
	}
	assert.Equal(t, 2, bans)
	assert.Equal(t, 8, picks)

	// Blue holds phase-1 initiative: first ban plus the 1-2-2-2-2-1 pick
	// grouping puts blue at these script indices.
	blueAt := map[int]bool{0: true, 2: true, 5: true, 6: true, 9: true}
	for i, step := range order {
		want := "red"
		if blueAt[i] {
			want = "blue"
		}
		assert.Equalf(t, want, step.Team, "script index %d", i)
	}

	assert.Equal(t, Step{Team: "blue", Type: Ban}, order[0])
	assert.Equal(t, Step{Team: "red", Type: Ban}, order[1])
}

func TestOrderPhase2(t *testing.T) {
	order := Order("blue", "red", 2)
	require.Len(t, order, 12)

	bans, picks := 0, 0
	for _, step := range order {
		switch step.Type {
		case Ban:
			bans++
		case Pick:
			picks++
		}
	}
	assert.Equal(t, 2, bans)
	assert.Equal(t, 10, picks)

	// Initiative inverts: red bans first and seeds the pick pairs.
	assert.Equal(t, Step{Team: "red", Type: Ban}, order[0])
	assert.Equal(t, Step{Team: "blue", Type: Ban}, order[1])

	wantPicks := []string{"red", "blue", "blue", "red", "red", "blue", "blue", "red", "red", "blue"}
	for i, want := range wantPicks {
		step := order[2+i]
		assert.Equal(t, Pick, step.Type)
		assert.Equalf(t, want, step.Team, "pick %d", i)
	}
}

func TestTaken(t *testing.T) {
	actions := []Action{
		{Team: "a", Type: Ban, Champion: "Jiyan"},
		{Team: "b", Type: Ban, Champion: Skipped},
		{Team: "a", Type: Pick, Champion: "Calcharo"},
	}

	cases := []struct {
		name     string
		champion string
		want     bool
	}{
		{name: "banned champion is taken", champion: "Jiyan", want: true},
		{name: "picked champion is taken", champion: "Calcharo", want: true},
		{name: "fresh champion is free", champion: "Verina", want: false},
		{name: "skip marker never counts", champion: Skipped, want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Taken(actions, tc.champion))
		})
	}
}
