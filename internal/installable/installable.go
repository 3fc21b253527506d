// Package installable tracks the server-side scheduled content
// generators ("installables") known to this editor. The generators
// themselves run remotely; the editor only needs their names to suspend
// the active one around a send, so a user-authored board is not
// immediately overwritten by a scheduled refresh.
//
// The known installables are declared in a YAML manifest shipped next to
// the configuration file.
package installable

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration for YAML values like "15m".
type Duration time.Duration

// UnmarshalYAML parses a Go duration string.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Spec describes one installable from the manifest.
type Spec struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Refresh     Duration `yaml:"refresh"`
}

// manifest is the YAML file shape.
type manifest struct {
	Installables []Spec `yaml:"installables"`
}

// Toggler switches installables on and off at the gateway.
type Toggler interface {
	Activate(ctx context.Context, name string) error
	Deactivate(ctx context.Context, name string) error
}

// Registry holds the known installables and which one is active.
type Registry struct {
	specs  map[string]Spec
	order  []string
	active string
	logger *slog.Logger
}

// LoadManifest reads the YAML manifest at path. An empty path yields an
// empty registry: the editor works fine without declared installables.
func LoadManifest(path string, logger *slog.Logger) (*Registry, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	r := &Registry{
		specs:  make(map[string]Spec),
		logger: logger.With("component", "installable"),
	}
	if path == "" {
		return r, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading installable manifest: %w", err)
	}
	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing installable manifest: %w", err)
	}

	for _, spec := range m.Installables {
		if spec.Name == "" {
			return nil, fmt.Errorf("installable manifest entry without a name")
		}
		if _, dup := r.specs[spec.Name]; dup {
			return nil, fmt.Errorf("duplicate installable %q in manifest", spec.Name)
		}
		r.specs[spec.Name] = spec
		r.order = append(r.order, spec.Name)
	}
	return r, nil
}

// Names returns the installable names in manifest order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Get returns the spec for name.
func (r *Registry) Get(name string) (Spec, bool) {
	spec, ok := r.specs[name]
	return spec, ok
}

// Active returns the name of the active installable, or "".
func (r *Registry) Active() string {
	return r.active
}

// SetActive records which installable currently drives the board.
func (r *Registry) SetActive(name string) error {
	if name == "" {
		r.active = ""
		return nil
	}
	if _, ok := r.specs[name]; !ok {
		return fmt.Errorf("unknown installable %q", name)
	}
	r.active = name
	return nil
}

// SuspendActive deactivates the active installable before a send.
// Failure is logged and otherwise ignored: a send must not die because
// the scheduler API hiccuped, the worst case is the message being
// overwritten on the next scheduled refresh.
func (r *Registry) SuspendActive(ctx context.Context, tog Toggler) {
	if r.active == "" {
		return
	}
	if err := tog.Deactivate(ctx, r.active); err != nil {
		r.logger.Warn("failed to deactivate installable before send",
			"installable", r.active, "error", err)
		return
	}
	r.logger.Info("installable suspended for send", "installable", r.active)
}

// ResumeActive reactivates the active installable on user request.
func (r *Registry) ResumeActive(ctx context.Context, tog Toggler) error {
	if r.active == "" {
		return nil
	}
	if err := tog.Activate(ctx, r.active); err != nil {
		return fmt.Errorf("reactivating installable %s: %w", r.active, err)
	}
	return nil
}
