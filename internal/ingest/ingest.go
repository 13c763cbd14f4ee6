// Package ingest performs the one-time catalog load from the Steam app
// list into Postgres. It is a thin wrapper around the client and the
// catalog repository; scanning never mutates the catalog.
package ingest

import (
	"context"
	"fmt"

	"steamdeals/scanner/internal/client"
	"steamdeals/scanner/internal/repository"

	log "github.com/sirupsen/logrus"
)

type Ingestor struct {
	client  client.SteamClient
	catalog repository.CatalogRepository
}

func NewIngestor(client client.SteamClient, catalog repository.CatalogRepository) *Ingestor {
	return &Ingestor{
		client:  client,
		catalog: catalog,
	}
}

// Run fetches the full app list and replaces the stored catalog with it.
func (i *Ingestor) Run(ctx context.Context) error {
	apps, err := i.client.AppList(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch app list: %w", err)
	}

	if err := i.catalog.ReplaceAll(ctx, apps); err != nil {
		return fmt.Errorf("failed to store catalog: %w", err)
	}

	log.Infof("✅ Ingested catalog with %d apps", len(apps))
	return nil
}
