package deeds

import _ "embed"

// Version is the release of the deeds module, read from the VERSION file.
//
//go:embed VERSION
var Version string
