package protocolapi

import (
	"testing"

	"protocolkb/testutil"
)

func TestProtocolAPIImportBoundary(t *testing.T) {
	testutil.AssertNoDirectImports(t, ".", testutil.InternalImportForbidden, "public api must not depend on internal packages")
	testutil.AssertNoDirectImports(t, ".", testutil.ThirdPartyImportForbidden("golang.org/x/text"), "public api only folds tags with x/text")
}
