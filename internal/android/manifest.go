// SPDX-License-Identifier: MPL-2.0

package android

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/kafitra/lynxlink/internal/managedblock"
	"github.com/kafitra/lynxlink/pkg/lynxmod"
)

const (
	// ManifestMarkerStart opens the managed region in AndroidManifest.xml.
	ManifestMarkerStart = "<!-- lynx-autolink-permissions-start -->"
	// ManifestMarkerEnd closes the managed region in AndroidManifest.xml.
	ManifestMarkerEnd = "<!-- lynx-autolink-permissions-end -->"

	manifestIndent       = "    "
	noPermissionsComment = "<!-- No additional permissions required by Lynx modules. -->"
	applicationTag       = "<application"
)

// InjectManifestPermissions writes one <uses-permission> per distinct
// permission of mods into the managed region of manifestFile. A new region
// is placed just before the <application> element.
func InjectManifestPermissions(manifestFile string, mods []*lynxmod.Descriptor) error {
	content, err := os.ReadFile(manifestFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrManifestNotFound, manifestFile)
		}
		return fmt.Errorf("failed to read %s: %w", manifestFile, err)
	}

	block := managedblock.Block{
		Start:  ManifestMarkerStart,
		End:    ManifestMarkerEnd,
		Lines:  ManifestLines(mods),
		Indent: manifestIndent,
	}
	anchor := managedblock.BeforeToken(applicationTag, "\n\n"+manifestIndent)

	updated, err := managedblock.Apply(string(content), block, anchor)
	if err != nil {
		if errors.Is(err, managedblock.ErrAnchorNotFound) {
			return fmt.Errorf("could not find %s tag in %s: %w", applicationTag, manifestFile, err)
		}
		return fmt.Errorf("failed to update %s: %w", manifestFile, err)
	}

	return writeIfChanged(manifestFile, updated)
}

// ManifestLines renders the managed body for mods.
func ManifestLines(mods []*lynxmod.Descriptor) []string {
	permissions := CollectPermissions(mods)
	if len(permissions) == 0 {
		return []string{noPermissionsComment}
	}

	lines := make([]string, len(permissions))
	for i, p := range permissions {
		lines[i] = fmt.Sprintf(`<uses-permission android:name="%s" />`, p)
	}
	return lines
}

// CollectPermissions returns the distinct permissions declared by mods in
// lexicographic order.
func CollectPermissions(mods []*lynxmod.Descriptor) []lynxmod.Permission {
	seen := make(map[lynxmod.Permission]bool)
	var permissions []lynxmod.Permission
	for _, mod := range mods {
		for _, p := range mod.Android.Permissions {
			if seen[p] {
				continue
			}
			seen[p] = true
			permissions = append(permissions, p)
		}
	}
	sort.Slice(permissions, func(i, j int) bool { return permissions[i] < permissions[j] })
	return permissions
}
