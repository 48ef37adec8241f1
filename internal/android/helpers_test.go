// SPDX-License-Identifier: MPL-2.0

package android

import (
	"path/filepath"
	"strings"

	"github.com/kafitra/lynxlink/pkg/lynxmod"
)

func moduleDesc(root, name, moduleClass string, permissions ...lynxmod.Permission) *lynxmod.Descriptor {
	pkg := "lynx-" + strings.ToLower(name)
	return &lynxmod.Descriptor{
		Name: lynxmod.ModuleName(name),
		Android: lynxmod.AndroidConfig{
			ModuleClass: lynxmod.ClassName(moduleClass),
			SourceDir:   "android",
			Permissions: permissions,
		},
		PackageDir:  filepath.Join(root, "node_modules", pkg),
		PackageName: pkg,
	}
}

func componentDesc(root, name, componentClass, tag string, permissions ...lynxmod.Permission) *lynxmod.Descriptor {
	d := moduleDesc(root, name, "", permissions...)
	d.Android.ComponentClass = lynxmod.ClassName(componentClass)
	d.Android.ComponentTag = tag
	return d
}
