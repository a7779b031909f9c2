package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/rentadmin/internal/client/client"
	"github.com/dmitrijs2005/rentadmin/internal/client/models"
	"github.com/dmitrijs2005/rentadmin/internal/common"
)

type PropertyService interface {
	List(ctx context.Context) ([]models.Property, error)
	SetStatus(ctx context.Context, id string, status models.PropertyStatus) error
	Delete(ctx context.Context, id string) error
}

type propertyService struct {
	client client.Client
}

func NewPropertyService(c client.Client) PropertyService {
	return &propertyService{client: c}
}

func (s *propertyService) List(ctx context.Context) ([]models.Property, error) {
	return s.client.ListProperties(ctx)
}

func (s *propertyService) SetStatus(ctx context.Context, id string, status models.PropertyStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown property status %q", common.ErrorValidation, status)
	}
	return s.client.SetPropertyStatus(ctx, id, status)
}

func (s *propertyService) Delete(ctx context.Context, id string) error {
	return s.client.DeleteProperty(ctx, id)
}
