package main

import (
	"context"
	"net/http"

	"github.com/rotisserie/eris"

	"github.com/dits-agency/outreach-cli/internal/ingest"
	"github.com/dits-agency/outreach-cli/internal/mapper"
	"github.com/dits-agency/outreach-cli/internal/model"
	"github.com/dits-agency/outreach-cli/internal/store"
	"github.com/dits-agency/outreach-cli/pkg/pagespeed"
)

// newPageSpeedClient builds the API client from config. Fails before any
// row is read when the credential is missing.
func newPageSpeedClient() (pagespeed.Client, error) {
	opts := []pagespeed.Option{
		pagespeed.WithHTTPClient(&http.Client{Timeout: cfg.PageSpeed.Timeout()}),
	}
	if cfg.PageSpeed.BaseURL != "" {
		opts = append(opts, pagespeed.WithBaseURL(cfg.PageSpeed.BaseURL))
	}
	if cfg.PageSpeed.Strategy != "" {
		opts = append(opts, pagespeed.WithStrategy(cfg.PageSpeed.Strategy))
	}
	return pagespeed.NewClient(cfg.PageSpeed.Key, opts...)
}

// initStore opens the run-history store per config.
func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL)
	case "sqlite", "":
		return store.NewSQLite(cfg.Store.DatabaseURL)
	default:
		return nil, eris.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

// prepareLeads turns an input table into leads: row cap, column inference,
// optional overrides, mandatory-column check.
func prepareLeads(table *ingest.Table, maxRows int, overridePath string) ([]model.Lead, mapper.Mapping, error) {
	table.Truncate(maxRows)

	mapping := mapper.MapColumns(table)
	if overridePath != "" {
		overrides, err := mapper.LoadOverrides(overridePath)
		if err != nil {
			return nil, nil, err
		}
		mapping, err = mapping.Apply(overrides, table)
		if err != nil {
			return nil, nil, err
		}
	}
	if err := mapping.Validate(); err != nil {
		return nil, nil, err
	}

	return mapper.Leads(table, mapping), mapping, nil
}
