package operation

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/operation"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type ListOperations struct {
	query operation.Query
}

func NewListOperations(query operation.Query) *ListOperations {
	return &ListOperations{query: query}
}

type ListOperationsResult struct {
	Items []models.Operation `json:"items"`
	Total int64              `json:"total"`
}

func (uc *ListOperations) Execute(ctx context.Context, f operation.ListFilter) (*ListOperationsResult, error) {
	items, total, err := uc.query.ListOperations(ctx, f)
	if err != nil {
		return nil, err
	}
	return &ListOperationsResult{Items: items, Total: total}, nil
}
