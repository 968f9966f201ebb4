package audit

import (
	"context"

	id "aegis/pkg/domain"
)

type Store interface {
	Append(ctx context.Context, event Event) error
	ListByCampaign(ctx context.Context, campaignID id.CampaignID) ([]Event, error)
}
