package config

// ConfigFileNames are the recognized runtime configuration file names.
var ConfigFileNames = []string{"tessera.yaml", "tessera.yml"}

// Built-in scalar type names
const (
	IntTypeName   = "Int"
	UIntTypeName  = "UInt"
	FloatTypeName = "Float"
	CharTypeName  = "Char"
	ByteTypeName  = "Byte"
	BoolTypeName  = "Bool"
)

// Built-in type constructor names
const (
	ListTypeName    = "List"
	PromiseTypeName = "Promise"
	RecordTypeName  = "Record"
)

// AnyTypeName is the universal wildcard type name.
const AnyTypeName = "Any"

// Lock acquisition strategies for shared-mutable globals
const (
	LockSpin    = "spin"
	LockBackoff = "backoff"
	LockBlock   = "block"
)

// Log output formats
const (
	LogFormatAuto = "auto"
	LogFormatText = "text"
	LogFormatJSON = "json"
)
