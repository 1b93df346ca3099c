package design_space

import (
	"github.com/hankgalt/design-space/internal/sinks"
	"github.com/hankgalt/design-space/internal/sources"
	"github.com/hankgalt/design-space/pkg/domain"
)

// Enumeration requests for the inline element list source.
type (
	ListCSVRequest     = domain.EnumerationRequest[sources.ElementListConfig, sinks.LocalCSVSinkConfig]
	ListSQLLiteRequest = domain.EnumerationRequest[sources.ElementListConfig, sinks.SQLLiteSinkConfig]
	ListPIFRequest     = domain.EnumerationRequest[sources.ElementListConfig, sinks.PIFSinkConfig]
	ListCloudRequest   = domain.EnumerationRequest[sources.ElementListConfig, sinks.CloudCSVSinkConfig]
	ListNoopRequest    = domain.EnumerationRequest[sources.ElementListConfig, sinks.NoopSinkConfig[domain.Formula]]
)

// Enumeration requests for the local CSV design file source.
type (
	CSVCSVRequest     = domain.EnumerationRequest[sources.LocalCSVConfig, sinks.LocalCSVSinkConfig]
	CSVSQLLiteRequest = domain.EnumerationRequest[sources.LocalCSVConfig, sinks.SQLLiteSinkConfig]
	CSVPIFRequest     = domain.EnumerationRequest[sources.LocalCSVConfig, sinks.PIFSinkConfig]
	CSVCloudRequest   = domain.EnumerationRequest[sources.LocalCSVConfig, sinks.CloudCSVSinkConfig]
	CSVNoopRequest    = domain.EnumerationRequest[sources.LocalCSVConfig, sinks.NoopSinkConfig[domain.Formula]]
)

// Enumeration requests for the cloud CSV design file source.
type (
	CloudCSVRequest     = domain.EnumerationRequest[sources.CloudCSVConfig, sinks.LocalCSVSinkConfig]
	CloudSQLLiteRequest = domain.EnumerationRequest[sources.CloudCSVConfig, sinks.SQLLiteSinkConfig]
	CloudPIFRequest     = domain.EnumerationRequest[sources.CloudCSVConfig, sinks.PIFSinkConfig]
	CloudCloudRequest   = domain.EnumerationRequest[sources.CloudCSVConfig, sinks.CloudCSVSinkConfig]
	CloudNoopRequest    = domain.EnumerationRequest[sources.CloudCSVConfig, sinks.NoopSinkConfig[domain.Formula]]
)
