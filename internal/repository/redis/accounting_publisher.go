package redis

import (
	"context"
	"fmt"

	"github.com/transport-service/internal/domain"
	"github.com/transport-service/internal/domain/repository"
	"github.com/transport-service/internal/pkg/validator"
)

type accountingPublisher struct {
	streams repository.StreamRepository
	stream  string
}

// NewAccountingPublisher публикует события учёта в указанный стрим
func NewAccountingPublisher(streams repository.StreamRepository, stream string) repository.AccountingPublisher {
	if stream == "" {
		stream = domain.StreamAccounting
	}
	return &accountingPublisher{
		streams: streams,
		stream:  stream,
	}
}

func (p *accountingPublisher) Publish(ctx context.Context, event *domain.AccountingEvent) error {
	if err := validator.Validate(event); err != nil {
		return fmt.Errorf("accounting event: %w", err)
	}
	return p.streams.PublishToStream(ctx, p.stream, event)
}
