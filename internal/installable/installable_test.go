package installable

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const sampleManifest = `
installables:
  - name: clock
    description: current time, refreshed each minute
    refresh: 1m
  - name: weather
    description: local forecast
    refresh: 15m
`

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "installables.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

type fakeToggler struct {
	activated   []string
	deactivated []string
	fail        bool
}

func (f *fakeToggler) Activate(_ context.Context, name string) error {
	if f.fail {
		return errors.New("gateway down")
	}
	f.activated = append(f.activated, name)
	return nil
}

func (f *fakeToggler) Deactivate(_ context.Context, name string) error {
	if f.fail {
		return errors.New("gateway down")
	}
	f.deactivated = append(f.deactivated, name)
	return nil
}

func TestLoadManifest(t *testing.T) {
	r, err := LoadManifest(writeManifest(t, sampleManifest), nil)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	names := r.Names()
	if len(names) != 2 || names[0] != "clock" || names[1] != "weather" {
		t.Errorf("unexpected names %v", names)
	}

	spec, ok := r.Get("clock")
	if !ok {
		t.Fatal("clock should be known")
	}
	if spec.Refresh.Std() != time.Minute {
		t.Errorf("unexpected refresh %v", spec.Refresh.Std())
	}
	if _, ok := r.Get("news"); ok {
		t.Error("unknown installable should not resolve")
	}
}

func TestLoadManifestEmptyPath(t *testing.T) {
	r, err := LoadManifest("", nil)
	if err != nil {
		t.Fatalf("empty path should yield an empty registry: %v", err)
	}
	if len(r.Names()) != 0 {
		t.Errorf("expected no installables, got %v", r.Names())
	}
}

func TestLoadManifestRejectsDuplicates(t *testing.T) {
	path := writeManifest(t, `
installables:
  - name: clock
  - name: clock
`)
	if _, err := LoadManifest(path, nil); err == nil {
		t.Error("duplicate names should fail")
	}
}

func TestLoadManifestRejectsUnnamed(t *testing.T) {
	path := writeManifest(t, `
installables:
  - description: nameless
`)
	if _, err := LoadManifest(path, nil); err == nil {
		t.Error("entry without a name should fail")
	}
}

func TestSetActive(t *testing.T) {
	r, err := LoadManifest(writeManifest(t, sampleManifest), nil)
	if err != nil {
		t.Fatal(err)
	}

	if err := r.SetActive("news"); err == nil {
		t.Error("unknown installable should not become active")
	}
	if err := r.SetActive("clock"); err != nil {
		t.Fatalf("SetActive failed: %v", err)
	}
	if r.Active() != "clock" {
		t.Errorf("unexpected active %q", r.Active())
	}
	if err := r.SetActive(""); err != nil {
		t.Fatalf("clearing active failed: %v", err)
	}
	if r.Active() != "" {
		t.Error("active should be cleared")
	}
}

func TestSuspendActive(t *testing.T) {
	r, err := LoadManifest(writeManifest(t, sampleManifest), nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := r.SetActive("weather"); err != nil {
		t.Fatal(err)
	}

	tog := &fakeToggler{}
	r.SuspendActive(context.Background(), tog)
	if len(tog.deactivated) != 1 || tog.deactivated[0] != "weather" {
		t.Errorf("expected weather deactivated, got %v", tog.deactivated)
	}

	// The active installable stays recorded so it can be resumed later.
	if r.Active() != "weather" {
		t.Errorf("active should survive suspension, got %q", r.Active())
	}
}

func TestSuspendActiveFailureIsNonFatal(t *testing.T) {
	r, err := LoadManifest(writeManifest(t, sampleManifest), nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := r.SetActive("clock"); err != nil {
		t.Fatal(err)
	}

	// Must not panic or propagate.
	r.SuspendActive(context.Background(), &fakeToggler{fail: true})
}

func TestSuspendActiveNoopWithoutActive(t *testing.T) {
	r, err := LoadManifest("", nil)
	if err != nil {
		t.Fatal(err)
	}
	tog := &fakeToggler{}
	r.SuspendActive(context.Background(), tog)
	if len(tog.deactivated) != 0 {
		t.Errorf("nothing should be deactivated, got %v", tog.deactivated)
	}
}

func TestResumeActive(t *testing.T) {
	r, err := LoadManifest(writeManifest(t, sampleManifest), nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := r.SetActive("clock"); err != nil {
		t.Fatal(err)
	}

	tog := &fakeToggler{}
	if err := r.ResumeActive(context.Background(), tog); err != nil {
		t.Fatalf("resume failed: %v", err)
	}
	if len(tog.activated) != 1 || tog.activated[0] != "clock" {
		t.Errorf("expected clock activated, got %v", tog.activated)
	}

	if err := r.ResumeActive(context.Background(), &fakeToggler{fail: true}); err == nil {
		t.Error("resume failure should propagate")
	}
}
