// Package swagger embeds the OpenAPI document of the HTTP API.
package swagger

import _ "embed"

// FileName is the name the document is served under.
const FileName = "course.swagger.json"

// Spec is the OpenAPI 2.0 document.
//
//go:embed course.swagger.json
var Spec []byte
