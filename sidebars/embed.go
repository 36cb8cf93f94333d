// Package sidebars holds the authored sidebar definitions.
package sidebars

import _ "embed"

// CoreName is the name of the main sidebar in core.yml.
const CoreName = "mainSidebar"

// CorePath is the repository path of the core sidebar source.
const CorePath = "sidebars/core.yml"

//go:embed core.yml
var Core []byte
