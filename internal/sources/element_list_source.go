package sources

import (
	"context"
	"errors"
	"slices"

	"github.com/hankgalt/design-space/pkg/domain"
)

const (
	ErrMsgElementListEmpty = "element list: no elements"
)

var (
	ErrElementListEmpty = errors.New(ErrMsgElementListEmpty)
)

const (
	ElementListSource = "element-list-source"
)

// Inline element list source.
type elementListSource struct {
	elements []string
}

// Name of the source.
func (s *elementListSource) Name() string { return ElementListSource }

// Close closes the element list source.
func (s *elementListSource) Close(ctx context.Context) error {
	return nil
}

// Elements returns a copy of the configured elements.
func (s *elementListSource) Elements(ctx context.Context) ([]string, error) {
	return slices.Clone(s.elements), nil
}

// Element list source config.
type ElementListConfig struct {
	Elements []string
}

// Name of the source.
func (c ElementListConfig) Name() string { return ElementListSource }

// BuildSource builds an element list source from the config.
func (c ElementListConfig) BuildSource(ctx context.Context) (domain.ElementSource, error) {
	if len(c.Elements) == 0 {
		return nil, ErrElementListEmpty
	}
	return &elementListSource{elements: slices.Clone(c.Elements)}, nil
}
