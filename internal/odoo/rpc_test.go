package odoo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeInvoker records calls and plays back canned results.
type fakeInvoker struct {
	calls  []fakeCall
	result any
	err    error
}

type fakeCall struct {
	model  string
	method string
	args   []any
	kwargs map[string]any
}

func (f *fakeInvoker) ExecuteKw(_ context.Context, model, method string, args []any, kwargs map[string]any) (any, error) {
	f.calls = append(f.calls, fakeCall{model: model, method: method, args: args, kwargs: kwargs})
	return f.result, f.err
}

func TestSearchRead(t *testing.T) {
	inv := &fakeInvoker{result: []any{
		map[string]any{"id": int64(1), "name": "Acme"},
		map[string]any{"id": int64(2), "name": "Globex"},
	}}

	records, err := SearchRead(context.Background(), inv, "res.partner",
		[]any{[]any{"is_company", "=", true}},
		SearchOptions{Fields: []string{"id", "name"}, Limit: 10, Order: "name asc"})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Acme", records[0]["name"])

	require.Len(t, inv.calls, 1)
	call := inv.calls[0]
	assert.Equal(t, "res.partner", call.model)
	assert.Equal(t, "search_read", call.method)
	assert.Equal(t, []string{"id", "name"}, call.kwargs["fields"])
	assert.Equal(t, 10, call.kwargs["limit"])
	assert.Equal(t, "name asc", call.kwargs["order"])
	assert.NotContains(t, call.kwargs, "offset")
}

func TestSearchReadEmptyResult(t *testing.T) {
	inv := &fakeInvoker{result: []any{}}

	records, err := SearchRead(context.Background(), inv, "crm.lead", []any{}, SearchOptions{})
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSearchReadBadPayload(t *testing.T) {
	inv := &fakeInvoker{result: "not a list"}

	_, err := SearchRead(context.Background(), inv, "crm.lead", []any{}, SearchOptions{})
	require.Error(t, err)
	assert.True(t, IsRemote(err))
}

func TestSearchCount(t *testing.T) {
	inv := &fakeInvoker{result: int64(17)}

	n, err := SearchCount(context.Background(), inv, "crm.lead", []any{[]any{"type", "=", "lead"}})
	require.NoError(t, err)
	assert.Equal(t, int64(17), n)
	assert.Equal(t, "search_count", inv.calls[0].method)
}

func TestCreate(t *testing.T) {
	inv := &fakeInvoker{result: int64(55)}

	id, err := Create(context.Background(), inv, "crm.lead", map[string]any{"name": "New lead"})
	require.NoError(t, err)
	assert.Equal(t, int64(55), id)

	call := inv.calls[0]
	assert.Equal(t, "create", call.method)
	require.Len(t, call.args, 1)
	assert.Equal(t, map[string]any{"name": "New lead"}, call.args[0])
}

func TestCreateBadResult(t *testing.T) {
	inv := &fakeInvoker{result: false}

	_, err := Create(context.Background(), inv, "crm.lead", map[string]any{"name": "x"})
	require.Error(t, err)
	assert.True(t, IsRemote(err))
}

func TestWrite(t *testing.T) {
	inv := &fakeInvoker{result: true}

	err := Write(context.Background(), inv, "crm.lead", []int64{9}, map[string]any{"type": "opportunity"})
	require.NoError(t, err)

	call := inv.calls[0]
	assert.Equal(t, "write", call.method)
	require.Len(t, call.args, 2)
	assert.Equal(t, []int64{9}, call.args[0])
}
