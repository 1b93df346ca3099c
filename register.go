package design_space

import (
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/workflow"

	"github.com/hankgalt/design-space/internal/sinks"
	"github.com/hankgalt/design-space/internal/sources"
	"github.com/hankgalt/design-space/pkg/domain"
)

// Registry is the part of worker.Registry used to register enumeration
// workflows & activities. Satisfied by worker.Worker & the temporal test
// environments.
type Registry interface {
	RegisterWorkflowWithOptions(w interface{}, options workflow.RegisterOptions)
	RegisterActivityWithOptions(a interface{}, options activity.RegisterOptions)
}

// RegisterEnumeration registers the enumeration workflow for every source &
// sink pair, plus every activity they run.
func RegisterEnumeration(r Registry) {
	registerSource[sources.ElementListConfig](r)
	registerSource[sources.LocalCSVConfig](r)
	registerSource[sources.CloudCSVConfig](r)

	registerSink[sinks.LocalCSVSinkConfig](r)
	registerSink[sinks.SQLLiteSinkConfig](r)
	registerSink[sinks.PIFSinkConfig](r)
	registerSink[sinks.CloudCSVSinkConfig](r)
	registerSink[sinks.NoopSinkConfig[domain.Formula]](r)

	r.RegisterActivityWithOptions(EnumerateFormulasActivity, activity.RegisterOptions{Name: EnumerateFormulasActivityAlias})
	r.RegisterActivityWithOptions(WriteManifestActivity, activity.RegisterOptions{Name: WriteManifestActivityAlias})
}

// registerSource registers the fetch activity of S & the workflow of S with every sink.
func registerSource[S domain.ElementSourceConfig](r Registry) {
	var src S
	r.RegisterActivityWithOptions(
		FetchElementsActivity[S],
		activity.RegisterOptions{Name: FetchElementsActivityAlias(src.Name())},
	)

	RegisterWorkflow[S, sinks.LocalCSVSinkConfig](r)
	RegisterWorkflow[S, sinks.SQLLiteSinkConfig](r)
	RegisterWorkflow[S, sinks.PIFSinkConfig](r)
	RegisterWorkflow[S, sinks.CloudCSVSinkConfig](r)
	RegisterWorkflow[S, sinks.NoopSinkConfig[domain.Formula]](r)
}

// registerSink registers the write activity of D.
func registerSink[D domain.SinkConfig[domain.Formula]](r Registry) {
	var sink D
	r.RegisterActivityWithOptions(
		WriteActivity[D],
		activity.RegisterOptions{Name: WriteActivityAlias(sink.Name())},
	)
}

// RegisterWorkflow registers the enumeration workflow of S & D under its alias.
func RegisterWorkflow[S domain.ElementSourceConfig, D domain.SinkConfig[domain.Formula]](r Registry) {
	var (
		src  S
		sink D
	)
	r.RegisterWorkflowWithOptions(
		EnumerateDesignSpaceWorkflow[S, D],
		workflow.RegisterOptions{Name: EnumerationWorkflowAlias(src.Name(), sink.Name())},
	)
}
