package search

import (
	"context"
	"errors"
	"fmt"

	algoliasearch "github.com/algolia/algoliasearch-client-go/v3/algolia/search"
)

// algoliaIndex is the subset of *algoliasearch.Index the adapter calls.
type algoliaIndex interface {
	SaveObjects(objects interface{}, opts ...interface{}) (algoliasearch.GroupBatchRes, error)
	Search(query string, opts ...interface{}) (algoliasearch.QueryRes, error)
}

// AlgoliaIndex adapts an Algolia index to Index.
type AlgoliaIndex struct {
	index algoliaIndex
}

// NewAlgoliaIndex connects to indexName with an admin capable API key.
func NewAlgoliaIndex(appID, apiKey, indexName string) (*AlgoliaIndex, error) {
	if appID == "" || apiKey == "" || indexName == "" {
		return nil, errors.New("algolia app id, api key and index name are required")
	}
	client := algoliasearch.NewClient(appID, apiKey)
	return &AlgoliaIndex{index: client.InitIndex(indexName)}, nil
}

func newAlgoliaIndexWith(index algoliaIndex) *AlgoliaIndex {
	return &AlgoliaIndex{index: index}
}

// SaveObjects pushes records and waits for every batch task to be published.
func (a *AlgoliaIndex) SaveObjects(ctx context.Context, records []Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	res, err := a.index.SaveObjects(records)
	if err != nil {
		return fmt.Errorf("algolia save objects: %w", err)
	}
	if err := res.Wait(); err != nil {
		return fmt.Errorf("algolia wait for indexing: %w", err)
	}
	return nil
}

// Search runs a plain text query and returns the hits wrapper shape.
func (a *AlgoliaIndex) Search(ctx context.Context, query string) (Response, error) {
	if err := ctx.Err(); err != nil {
		return Response{}, err
	}
	res, err := a.index.Search(query)
	if err != nil {
		return Response{}, fmt.Errorf("algolia search: %w", err)
	}
	return HitsResponse(res.Hits), nil
}
