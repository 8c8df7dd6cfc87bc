package crm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogStages(t *testing.T) {
	inv := &scriptedInvoker{t: t, replies: []any{
		[]any{
			map[string]any{"id": int64(1), "name": "New", "sequence": int64(1), "fold": false},
			map[string]any{"id": int64(4), "name": "Won", "sequence": int64(10), "fold": true, "probability": float64(100)},
		},
	}}
	repo := NewCatalogRepository(inv, nil, testOptions())

	stages, err := repo.Stages(context.Background(), StageFilter{TeamID: 4})
	require.NoError(t, err)
	require.Len(t, stages, 2)
	assert.Equal(t, "New", stages[0].Name)
	assert.True(t, stages[1].Fold)
	assert.Equal(t, float64(100), stages[1].Probability)

	call := inv.calls[0]
	assert.Equal(t, "crm.stage", call.model)
	assert.Equal(t, []any{[]any{[]any{"team_id", "=", int64(4)}}}, call.args)
	assert.Equal(t, "sequence asc", call.kwargs["order"])
}

func TestCatalogTeams(t *testing.T) {
	inv := &scriptedInvoker{t: t, replies: []any{
		[]any{map[string]any{
			"id":         int64(4),
			"name":       "Admissions",
			"active":     true,
			"user_id":    []any{int64(5), "Eva"},
			"member_ids": []any{int64(5), int64(6), int64(7)},
		}},
	}}
	repo := NewCatalogRepository(inv, nil, testOptions())

	teams, err := repo.Teams(context.Background())
	require.NoError(t, err)
	require.Len(t, teams, 1)
	assert.Equal(t, "Admissions", teams[0].Name)
	assert.Equal(t, 3, teams[0].MemberCount)
	require.NotNil(t, teams[0].Leader)
	assert.Equal(t, int64(5), teams[0].Leader.ID)

	assert.Equal(t, "crm.team", inv.calls[0].model)
	assert.Equal(t, "name asc", inv.calls[0].kwargs["order"])
}

func TestCatalogPrograms(t *testing.T) {
	inv := &scriptedInvoker{t: t, replies: []any{
		[]any{map[string]any{
			"id":         int64(15),
			"name":       "MBA",
			"active":     true,
			"list_price": float64(9500),
			"categ_id":   []any{int64(2), "Postgrado"},
		}},
	}}
	repo := NewCatalogRepository(inv, nil, testOptions())

	programs, err := repo.Programs(context.Background(), ProgramFilter{ActiveOnly: true}, 0)
	require.NoError(t, err)
	require.Len(t, programs, 1)
	assert.Equal(t, "MBA", programs[0].Name)
	assert.Equal(t, float64(9500), programs[0].Price)

	call := inv.calls[0]
	assert.Equal(t, "product.template", call.model)
	assert.Equal(t, []any{[]any{[]any{"active", "=", true}}}, call.args)
	assert.Equal(t, 100, call.kwargs["limit"])
}
