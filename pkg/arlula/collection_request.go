package arlula

import (
	"slices"
	"strings"
)

type collectionWire struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords,omitempty"`
	Team        string   `json:"team,omitempty"`
}

// CollectionCreateRequest creates a collection.
type CollectionCreateRequest struct {
	title       string
	description string
	keywords    []string
	team        string
}

// NewCollectionCreateRequest starts a request for a collection with the given title and description.
func NewCollectionCreateRequest(title, description string) CollectionCreateRequest {
	return CollectionCreateRequest{title: title, description: description}
}

// WithKeywords adds search keywords.
func (r CollectionCreateRequest) WithKeywords(keywords ...string) CollectionCreateRequest {
	r.keywords = append(slices.Clone(r.keywords), keywords...)

	return r
}

// WithTeam creates the collection under a team.
func (r CollectionCreateRequest) WithTeam(team string) CollectionCreateRequest {
	r.team = team

	return r
}

// Valid requires a title and a description.
func (r CollectionCreateRequest) Valid() bool {
	return strings.TrimSpace(r.title) != "" && strings.TrimSpace(r.description) != ""
}

// Payload returns the JSON body of the request, or nil when invalid.
func (r CollectionCreateRequest) Payload() any {
	if !r.Valid() {
		return nil
	}

	return collectionWire{Title: r.title, Description: r.description, Keywords: r.keywords, Team: r.team}
}

// MarshalJSON renders the request body; invalid requests render as null.
func (r CollectionCreateRequest) MarshalJSON() ([]byte, error) {
	return marshalPayload(r.Payload())
}

// CollectionUpdateRequest replaces a collection's descriptive fields.
type CollectionUpdateRequest struct {
	title       string
	description string
	keywords    []string
}

// NewCollectionUpdateRequest starts an update with the new title and description.
func NewCollectionUpdateRequest(title, description string) CollectionUpdateRequest {
	return CollectionUpdateRequest{title: title, description: description}
}

// WithKeywords replaces the search keywords.
func (r CollectionUpdateRequest) WithKeywords(keywords ...string) CollectionUpdateRequest {
	r.keywords = slices.Clone(keywords)

	return r
}

// Valid requires a title and a description.
func (r CollectionUpdateRequest) Valid() bool {
	return strings.TrimSpace(r.title) != "" && strings.TrimSpace(r.description) != ""
}

// Payload returns the JSON body of the request, or nil when invalid.
func (r CollectionUpdateRequest) Payload() any {
	if !r.Valid() {
		return nil
	}

	return collectionWire{Title: r.title, Description: r.description, Keywords: r.keywords}
}

// MarshalJSON renders the request body; invalid requests render as null.
func (r CollectionUpdateRequest) MarshalJSON() ([]byte, error) {
	return marshalPayload(r.Payload())
}

// ItemAddRequest adds an ordered dataset to a collection.
type ItemAddRequest struct {
	dataset string
}

// NewItemAddRequest adds the dataset with the given id.
func NewItemAddRequest(dataset string) ItemAddRequest {
	return ItemAddRequest{dataset: dataset}
}

// Valid requires a dataset id.
func (r ItemAddRequest) Valid() bool {
	return r.dataset != ""
}

// Payload returns the JSON body of the request, or nil when invalid.
func (r ItemAddRequest) Payload() any {
	if !r.Valid() {
		return nil
	}

	return struct {
		Dataset string `json:"dataset"`
	}{Dataset: r.dataset}
}

// MarshalJSON renders the request body; invalid requests render as null.
func (r ItemAddRequest) MarshalJSON() ([]byte, error) {
	return marshalPayload(r.Payload())
}
