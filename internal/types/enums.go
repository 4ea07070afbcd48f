package types

type ComponentType string

const (
	ComponentTypeApplication         ComponentType = "application"
	ComponentTypeComposition         ComponentType = "composition"
	ComponentTypeService             ComponentType = "service"
	ComponentTypeSensorActuator      ComponentType = "sensor-actuator"
	ComponentTypeComplexDeviceDriver ComponentType = "complex-device-driver"
	ComponentTypeEcuAbstraction      ComponentType = "ecu-abstraction"
	ComponentTypeServiceProxy        ComponentType = "service-proxy"
	ComponentTypeParameter           ComponentType = "parameter"
	ComponentTypeNvBlock             ComponentType = "nv-block"
	ComponentTypeUnknown             ComponentType = "unknown"
)

type PortDirection string

const (
	PortDirectionProvided PortDirection = "provided"
	PortDirectionRequired PortDirection = "required"
)

type InterfaceKind string

const (
	InterfaceKindNone           InterfaceKind = ""
	InterfaceKindSenderReceiver InterfaceKind = "sender-receiver"
	InterfaceKindClientServer   InterfaceKind = "client-server"
	InterfaceKindTrigger        InterfaceKind = "trigger"
	InterfaceKindModeSwitch     InterfaceKind = "mode-switch"
	InterfaceKindNvData         InterfaceKind = "nv-data"
	InterfaceKindParameter      InterfaceKind = "parameter"
	InterfaceKindUnknown        InterfaceKind = "unknown"
)

type ConnectionKind string

const (
	ConnectionKindAssembly    ConnectionKind = "assembly"
	ConnectionKindDelegation  ConnectionKind = "delegation"
	ConnectionKindPassThrough ConnectionKind = "pass-through"
	ConnectionKindUnknown     ConnectionKind = "unknown"
)

type ArgumentDirection string

const (
	ArgumentDirectionIn    ArgumentDirection = "in"
	ArgumentDirectionOut   ArgumentDirection = "out"
	ArgumentDirectionInOut ArgumentDirection = "inout"
)

// RefState is the resolution state of a symbolic reference. References
// are never dereferenced directly; consumers check the state first.
type RefState string

const (
	RefStateAbsent   RefState = "absent"
	RefStateSymbolic RefState = "symbolic"
	RefStateResolved RefState = "resolved"
)

type WarningKind string

const (
	WarningUnknownType              WarningKind = "unknown-type"
	WarningUnknownPortKind          WarningKind = "unknown-port-kind"
	WarningUnknownInterfaceKind     WarningKind = "unknown-interface-kind"
	WarningUnknownConnectorKind     WarningKind = "unknown-connector-kind"
	WarningUnresolvedInterface      WarningKind = "unresolved-interface"
	WarningUnresolvedEndpoint       WarningKind = "unresolved-endpoint"
	WarningDirectionMismatch        WarningKind = "direction-mismatch"
	WarningDuplicatePackage         WarningKind = "duplicate-package"
	WarningDuplicateElement         WarningKind = "duplicate-element"
	WarningMissingShortName         WarningKind = "missing-short-name"
	WarningUnsupportedSchemaVersion WarningKind = "unsupported-schema-version"
)

type SearchScope string

const (
	SearchScopeAll        SearchScope = "all"
	SearchScopePackages   SearchScope = "packages"
	SearchScopeComponents SearchScope = "components"
	SearchScopePorts      SearchScope = "ports"
	SearchScopeInterfaces SearchScope = "interfaces"
)

type SearchMode string

const (
	SearchModeContains SearchMode = "contains"
	SearchModePrefix   SearchMode = "prefix"
	SearchModeSuffix   SearchMode = "suffix"
	SearchModeExact    SearchMode = "exact"
	SearchModeRegex    SearchMode = "regex"
	SearchModeFuzzy    SearchMode = "fuzzy"
)

type ItemKind string

const (
	ItemKindPackage   ItemKind = "package"
	ItemKindComponent ItemKind = "component"
	ItemKindPort      ItemKind = "port"
	ItemKindInterface ItemKind = "interface"
)

type ExportFormat string

const (
	ExportFormatJSON ExportFormat = "json"
	ExportFormatYAML ExportFormat = "yaml"
)
