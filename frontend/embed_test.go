package frontend_test

import (
	"io"
	"strings"
	"testing"

	"github.com/govpulse/govpulse/frontend"
	"github.com/m-mizutani/gt"
)

func TestGetHTTPFS(t *testing.T) {
	fsys, err := frontend.GetHTTPFS()
	gt.NoError(t, err).Required()

	for _, name := range []string{"/index.html", "/app.js", "/style.css"} {
		f, err := fsys.Open(name)
		gt.NoError(t, err).Required()
		data, err := io.ReadAll(f)
		f.Close()
		gt.NoError(t, err)
		gt.True(t, len(data) > 0)
	}
}

func TestDashboardScriptWritesCatalogTextAsText(t *testing.T) {
	data, err := frontend.FS.ReadFile("dist/app.js")
	gt.NoError(t, err).Required()

	script := string(data)
	// Service names and departments come from external catalogs and must
	// never be parsed as markup
	gt.False(t, strings.Contains(script, "innerHTML"))
	gt.True(t, strings.Contains(script, "textContent"))
}
