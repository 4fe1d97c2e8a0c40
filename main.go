// =============================================================================
// Intacct Functions - Main Entry Point
// =============================================================================
//
// intacct-fn builds the function blocks of Intacct XML API requests from
// YAML, CSV or XLSX definition files.
//
// USAGE:
//   intacct-fn build [files...]     - Build <content> documents
//   intacct-fn validate [files...]  - Validate definition files
//   intacct-fn functions            - List supported functions
//   intacct-fn version              - Display the application version
//
// ARCHITECTURE:
//   - cmd/                  : CLI command definitions (Cobra)
//   - internal/config       : Main YAML configuration
//   - internal/definitions  : Definition file loaders
//   - internal/converter    : Per-file build pipeline
//   - pkg/content           : Function builders (importable library)
//   - pkg/xmlwriter         : Streaming XML sink
//   - pkg/utils             : File helpers
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/intacct-functions/cmd"
)

func main() {
	cmd.Execute()
}
