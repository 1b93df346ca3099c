package design_space

import "github.com/google/uuid"

// ApplicationName is the task queue for design space workflows
const ApplicationName = "designSpaceTaskGroup"

// HostID - Use a new uuid so we can run several workers on the same machine.
// In real world case, you would use a hostname or ip address as HostID.
var HostID = ApplicationName + "_" + uuid.New().String()

const (
	EnumerateFormulasActivityAlias string = "enumerate-formulas-activity-alias"
	WriteManifestActivityAlias     string = "write-manifest-activity-alias"
)

// FetchElementsActivityAlias returns the fetch activity alias for a source.
func FetchElementsActivityAlias(source string) string {
	return "fetch-elements-" + source + "-alias"
}

// WriteActivityAlias returns the write activity alias for a sink.
func WriteActivityAlias(sink string) string {
	return "write-next-" + sink + "-batch-alias"
}

// EnumerationWorkflowAlias returns the workflow alias for a source & sink pair.
func EnumerationWorkflowAlias(source, sink string) string {
	return "enumerate-" + source + "-" + sink + "-workflow-alias"
}
