package core

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	pep440 "github.com/aquasecurity/go-pep440-version"
)

// SupportedSchemaVersions is the PEP 440 specifier set of AUTOSAR schema
// releases the parser understands.
const SupportedSchemaVersions = ">=4.0.0, <4.4.0"

var schemaFilePattern = regexp.MustCompile(`AUTOSAR_(\d+)-(\d+)-(\d+)`)

// DetectSchemaVersion extracts "4.3.0" from an xsi:schemaLocation value
// such as "http://autosar.org/schema/r4.0 AUTOSAR_4-3-0.xsd". It returns
// "" when no versioned schema file is named.
func DetectSchemaVersion(schemaLocation string) string {
	match := schemaFilePattern.FindStringSubmatch(schemaLocation)
	if match == nil {
		return ""
	}
	return strings.Join(match[1:], ".")
}

// SchemaVersionSupported checks version against SupportedSchemaVersions.
func SchemaVersionSupported(version string) (bool, error) {
	parsed, err := pep440.Parse(version)
	if err != nil {
		return false, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid schema version %q", version)).
			WithCause(err)
	}
	specifiers, err := pep440.NewSpecifiers(SupportedSchemaVersions)
	if err != nil {
		return false, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("invalid supported schema specifier").
			WithCause(err)
	}
	return specifiers.Check(parsed), nil
}
