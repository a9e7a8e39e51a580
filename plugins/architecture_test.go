package plugins

import (
	"testing"

	"protocolkb/testutil"
)

// TestPluginsDoNotImportInternal enforces that contributor packages depend only
// on pkg/protocolapi and the standard library.
func TestPluginsDoNotImportInternal(t *testing.T) {
	testutil.AssertNoImportsUnder(t, ".", testutil.InternalImportForbidden, "plugins must only use pkg/protocolapi")
	testutil.AssertNoImportsUnder(t, ".", testutil.ThirdPartyImportForbidden(), "plugins carry no third-party dependencies")
}
