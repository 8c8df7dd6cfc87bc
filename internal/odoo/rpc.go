package odoo

import (
	"context"
	"fmt"
)

// SearchOptions bound a search_read call. Zero values are omitted from
// the keyword arguments so the server applies its own defaults.
type SearchOptions struct {
	Fields []string
	Offset int
	Limit  int
	Order  string
}

// SearchRead searches model for records matching domain and reads the
// requested fields. An empty result is not an error.
func SearchRead(ctx context.Context, inv Invoker, model string, domain []any, opts SearchOptions) ([]map[string]any, error) {
	kwargs := map[string]any{}
	if len(opts.Fields) > 0 {
		kwargs["fields"] = opts.Fields
	}
	if opts.Limit > 0 {
		kwargs["limit"] = opts.Limit
	}
	if opts.Offset > 0 {
		kwargs["offset"] = opts.Offset
	}
	if opts.Order != "" {
		kwargs["order"] = opts.Order
	}

	res, err := inv.ExecuteKw(ctx, model, "search_read", []any{domain}, kwargs)
	if err != nil {
		return nil, err
	}

	return decodeRecords(model, res)
}

// SearchCount counts records of model matching domain.
func SearchCount(ctx context.Context, inv Invoker, model string, domain []any) (int64, error) {
	res, err := inv.ExecuteKw(ctx, model, "search_count", []any{domain}, nil)
	if err != nil {
		return 0, err
	}

	n, ok := res.(int64)
	if !ok {
		return 0, &RemoteError{Model: model, Method: "search_count",
			Err: fmt.Errorf("unexpected result type %T", res)}
	}
	return n, nil
}

// Create creates one record and returns its id.
func Create(ctx context.Context, inv Invoker, model string, values map[string]any) (int64, error) {
	res, err := inv.ExecuteKw(ctx, model, "create", []any{values}, nil)
	if err != nil {
		return 0, err
	}

	id, ok := res.(int64)
	if !ok {
		return 0, &RemoteError{Model: model, Method: "create",
			Err: fmt.Errorf("unexpected result type %T", res)}
	}
	return id, nil
}

// Write updates the given records with values.
func Write(ctx context.Context, inv Invoker, model string, ids []int64, values map[string]any) error {
	_, err := inv.ExecuteKw(ctx, model, "write", []any{ids, values}, nil)
	return err
}

// decodeRecords converts a raw execute_kw result into record maps.
func decodeRecords(model string, res any) ([]map[string]any, error) {
	items, ok := res.([]any)
	if !ok {
		return nil, &RemoteError{Model: model, Method: "search_read",
			Err: fmt.Errorf("unexpected result type %T", res)}
	}

	records := make([]map[string]any, 0, len(items))
	for _, item := range items {
		rec, ok := item.(map[string]any)
		if !ok {
			return nil, &RemoteError{Model: model, Method: "search_read",
				Err: fmt.Errorf("unexpected record type %T", item)}
		}
		records = append(records, rec)
	}
	return records, nil
}
