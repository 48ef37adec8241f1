// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/kafitra/lynxlink/internal/config"
	"github.com/kafitra/lynxlink/internal/testutil"
)

// stubConfig is a ConfigProvider returning a fixed configuration.
type stubConfig struct {
	cfg *config.Config
	err error
}

func (s stubConfig) Load(context.Context, config.LoadOptions) (*config.Config, error) {
	if s.err != nil {
		return nil, s.err
	}
	cfg := *s.cfg
	return &cfg, nil
}

func defaultStub() stubConfig {
	return stubConfig{cfg: config.DefaultConfig()}
}

// runCLI executes the command tree with args and returns what it printed.
func runCLI(t *testing.T, provider ConfigProvider, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	var out, errOut bytes.Buffer
	app := NewApp(Dependencies{Config: provider, Stdout: &out, Stderr: &errOut})
	root := NewRootCommand(app)
	root.SetArgs(args)

	err = root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

// newLinkedProject creates a host project with an Android app and two
// installed modules: A (module class, INTERNET and CAMERA) and B (UI
// component X bound to "cam").
func newLinkedProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	testutil.WriteAndroidProject(t, root)
	nm := filepath.Join(root, "node_modules")
	testutil.WriteLynxPackage(t, nm, "lynx-a", testutil.ModuleJSON("A", "com.example.a.A", "INTERNET", "CAMERA"))
	testutil.WriteLynxPackage(t, nm, "@kafitra/lynx-b", testutil.ComponentJSON("B", "com.example.b.X", "cam"))
	return root
}
