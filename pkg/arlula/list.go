package arlula

import "fmt"

// ListResponse is the paginated envelope returned by list endpoints.
type ListResponse[T any] struct {
	Content []T `json:"content" yaml:"content"`
	Page    int `json:"page"    yaml:"page"`
	Length  int `json:"length"  yaml:"length"`
	Count   int `json:"count"   yaml:"count"`
}

// HasMore reports whether pages beyond this one exist.
func (l *ListResponse[T]) HasMore() bool {
	if l.Length <= 0 {
		return false
	}

	return (l.Page+1)*l.Length < l.Count
}

// ParseListResponse unwraps a list envelope, decoding every element of
// content with decode. The first element failure fails the whole list.
func ParseListResponse[T any](raw any, decode func(any) (T, error)) (*ListResponse[T], error) {
	o, err := asObject("list response", raw)
	if err != nil {
		return nil, err
	}

	resp := &ListResponse[T]{}

	page, err := o.integer("page")
	if err != nil {
		return nil, err
	}

	length, err := o.integer("length")
	if err != nil {
		return nil, err
	}

	count, err := o.integer("count")
	if err != nil {
		return nil, err
	}

	items, err := o.array("content")
	if err != nil {
		return nil, err
	}

	resp.Page, resp.Length, resp.Count = int(page), int(length), int(count)
	resp.Content = make([]T, 0, len(items))

	for i, item := range items {
		v, err := decode(item)
		if err != nil {
			return nil, fmt.Errorf("content[%d]: %w", i, err)
		}

		resp.Content = append(resp.Content, v)
	}

	return resp, nil
}
