// SPDX-License-Identifier: MPL-2.0

package android

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"

	"github.com/kafitra/lynxlink/pkg/lynxmod"
)

// RegistryClassName is the simple name of the generated registry class.
const RegistryClassName = "LynxAutolinkRegistry"

const registryTemplate = `// Generated by lynxlink. Do not edit: changes are overwritten by ` + "`lynxlink link`" + `.
package {{.Package}};

import com.lynx.tasm.LynxEnv;
import com.lynx.tasm.LynxViewBuilder;
import com.lynx.tasm.behavior.Behavior;
import com.lynx.tasm.behavior.LynxContext;
import com.lynx.tasm.behavior.ui.LynxUI;

/**
 * Registers the Lynx native modules and UI components installed in node_modules.
 */
public final class {{.ClassName}} {

    private {{.ClassName}}() {}

    /**
     * Registers every native module with the Lynx runtime.
     * Call once from Application.onCreate(), after LynxEnv.inst().init(...).
     */
    public static void registerAll() {
{{- range .Modules}}
        LynxEnv.inst().registerModule({{javaString .Name}}, {{.Class}}.class);
{{- else}}
        // No Lynx native modules detected.
{{- end}}
    }

    /**
     * Adds a behavior for every native UI component to builder.
     */
    public static void addUIBehaviorsTo(LynxViewBuilder builder) {
{{- range .Components}}
        builder.addBehavior(new Behavior({{javaString .Tag}}) {
            @Override
            public LynxUI createUI(LynxContext context) {
                return new {{.Class}}(context);
            }
        });
{{- else}}
        // No Lynx UI components detected.
{{- end}}
    }
}
`

var (
	// ErrInvalidJavaPackage is the sentinel error wrapped by InvalidJavaPackageError.
	ErrInvalidJavaPackage = errors.New("invalid java package")

	javaPackagePattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*(\.[A-Za-z_$][A-Za-z0-9_$]*)*$`)

	registry = template.Must(template.New("registry").Funcs(template.FuncMap{"javaString": javaString}).Parse(registryTemplate))
)

type (
	// InvalidJavaPackageError is returned when a Java package name is not a
	// dotted sequence of Java identifiers.
	InvalidJavaPackageError struct {
		Value string
	}

	registryData struct {
		Package    string
		ClassName  string
		Modules    []registryModule
		Components []registryComponent
	}

	registryModule struct {
		Name  string
		Class lynxmod.ClassName
	}

	registryComponent struct {
		Tag   string
		Class lynxmod.ClassName
	}
)

// Error implements the error interface.
func (e *InvalidJavaPackageError) Error() string {
	return fmt.Sprintf("invalid java package %q: must be dot-separated Java identifiers (e.g. \"com.example.app\")", e.Value)
}

// Unwrap returns ErrInvalidJavaPackage for errors.Is() compatibility.
func (e *InvalidJavaPackageError) Unwrap() error { return ErrInvalidJavaPackage }

// ValidateJavaPackage checks that javaPackage can be used in a package
// declaration.
func ValidateJavaPackage(javaPackage string) error {
	if !javaPackagePattern.MatchString(javaPackage) {
		return &InvalidJavaPackageError{Value: javaPackage}
	}
	return nil
}

// GenerateRegistry renders the registry source for mods in javaPackage.
// Modules are registered in the order given.
func GenerateRegistry(mods []*lynxmod.Descriptor, javaPackage string) (string, error) {
	if err := ValidateJavaPackage(javaPackage); err != nil {
		return "", err
	}

	data := registryData{Package: javaPackage, ClassName: RegistryClassName}
	for _, mod := range mods {
		if mod.HasModule() {
			data.Modules = append(data.Modules, registryModule{Name: string(mod.Name), Class: mod.Android.ModuleClass})
		}
		if mod.HasComponent() {
			data.Components = append(data.Components, registryComponent{Tag: mod.Android.ComponentTag, Class: mod.Android.ComponentClass})
		}
	}

	var sb strings.Builder
	if err := registry.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("render registry: %w", err)
	}
	return sb.String(), nil
}

// RegistryPath returns where the registry for javaPackage lives under appDir.
func RegistryPath(appDir, javaPackage string) string {
	parts := []string{appDir, "src", "main", "java"}
	parts = append(parts, strings.Split(javaPackage, ".")...)
	parts = append(parts, RegistryClassName+".java")
	return filepath.Join(parts...)
}

// WriteRegistry generates the registry and writes it under appDir, creating
// the package directories. The file is always fully regenerated. It returns
// the written path.
func WriteRegistry(appDir, javaPackage string, mods []*lynxmod.Descriptor) (string, error) {
	source, err := GenerateRegistry(mods, javaPackage)
	if err != nil {
		return "", err
	}

	path := RegistryPath(appDir, javaPackage)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
	}
	if err := writeIfChanged(path, source); err != nil {
		return "", err
	}
	return path, nil
}

// javaString quotes s as a Java string literal.
func javaString(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&sb, `\u%04x`, r)
				continue
			}
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
