package api

import (
	"context"
	"fmt"

	"github.com/jaeyoon222/PlanA/internal/domain"
)

func (c *Client) Zones(ctx context.Context) ([]domain.Zone, error) {
	var zones []domain.Zone
	if err := c.get(ctx, "/api/zones", &zones); err != nil {
		return nil, fmt.Errorf("list zones: %w", err)
	}
	return zones, nil
}

func (c *Client) Zone(ctx context.Context, zoneID int64) (*domain.Zone, error) {
	var zone domain.Zone
	if err := c.get(ctx, fmt.Sprintf("/api/zones/%d", zoneID), &zone); err != nil {
		return nil, fmt.Errorf("fetch zone %d: %w", zoneID, err)
	}
	return &zone, nil
}
