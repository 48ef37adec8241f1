// SPDX-License-Identifier: MPL-2.0

package lynxmod

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/kafitra/lynxlink/pkg/cueutil"
)

// MetadataFileName is the file a package carries at its root to declare
// itself a Lynx native extension.
const MetadataFileName = "lynx.module.json"

// MaxMetadataSize caps a metadata file. Real files are a few hundred bytes.
const MaxMetadataSize int64 = 256 * 1024

//go:embed lynxmod_schema.cue
var lynxmodSchema string

// ParseBytes parses and validates lynx.module.json content. path is only
// used for error messages.
//
// Errors are one of:
//   - a JSON syntax error ("failed to parse <path>: ensure it is valid JSON")
//   - a schema violation wrapping ErrInvalidMetadata
//   - a *ValidationError from Validate
func ParseBytes(data []byte, path string) (*Descriptor, error) {
	result, err := cueutil.ParseJSONAndDecode[map[string]any](
		[]byte(lynxmodSchema), data, "#LynxModule",
		cueutil.WithFilename(path),
		cueutil.WithMaxFileSize(MaxMetadataSize),
	)
	if err != nil {
		if errors.Is(err, cueutil.ErrInvalidJSON) {
			return nil, fmt.Errorf("failed to parse %s: ensure it is valid JSON: %w", path, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidMetadata, err)
	}

	return Validate(*result.Value, path)
}

// ParseFile reads and parses the metadata file at path.
func ParseFile(path string) (*Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return ParseBytes(data, path)
}
