// Description: This file contains reserved names shared by the adapter and the engines.
package constants

const (
	// ContextBinding is the reserved variable name under which the adapter
	// publishes the ExecutionContext into the local scope before each
	// evaluation, so scripts can introspect their own execution context.
	// Required host-visibility contract; stable, do not rename.
	ContextBinding = "context"

	// ResultBinding is the module-global name that carries the value of an
	// expression script. Scripts may also assign it explicitly.
	ResultBinding = "_"
)
