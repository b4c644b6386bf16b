// SPDX-License-Identifier: MPL-2.0

package registry_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/blackroad/tfregistry/pkg/registry"
)

func instanceRequest() registry.RegisterRequest {
	return registry.RegisterRequest{
		Name:         "demo_instance",
		Provider:     "aws",
		ResourceType: "aws_instance",
		HCLTemplate: `resource "aws_instance" "${var.name}" {
  ami           = "${var.ami}"
  instance_type = "${var.instance_type}"
  monitoring    = ${var.monitoring}
  extra         = "${var.optional_note}"
}`,
		Variables: []registry.Variable{
			{Name: "name", Type: "string", Required: true},
			{Name: "ami", Type: "string", Required: true},
			{Name: "instance_type", Type: "string", Default: registry.String("t3.micro")},
			{Name: "monitoring", Type: "bool", Default: registry.Bool(false)},
			{Name: "optional_note", Type: "string"},
		},
	}
}

func TestRender_MergesDefaultsAndOverrides(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	reg := newTestRegistry(t)

	if _, err := reg.Register(ctx, instanceRequest()); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	rendered, err := reg.Render(ctx, "demo_instance", map[string]registry.Value{
		"name":          registry.String("box"),
		"ami":           registry.String("ami-1"),
		"instance_type": registry.String("m5.large"),
	})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	// Override wins over the default; untouched default still applies.
	if !strings.Contains(rendered, `instance_type = "m5.large"`) {
		t.Errorf("override not applied:\n%s", rendered)
	}
	if !strings.Contains(rendered, "monitoring    = false") {
		t.Errorf("default not applied:\n%s", rendered)
	}
	if !strings.Contains(rendered, `resource "aws_instance" "box"`) {
		t.Errorf("required value not substituted:\n%s", rendered)
	}
	// Optional variable with neither default nor value passes through verbatim.
	if !strings.Contains(rendered, "${var.optional_note}") {
		t.Errorf("unsupplied optional placeholder was not preserved:\n%s", rendered)
	}
}

func TestRender_MissingRequiredListsAllNames(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	reg := newTestRegistry(t)

	if _, err := reg.Register(ctx, instanceRequest()); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	_, err := reg.Render(ctx, "demo_instance", nil)
	var missing *registry.MissingVariablesError
	if !errors.As(err, &missing) {
		t.Fatalf("Render() error = %v, want MissingVariablesError", err)
	}
	if len(missing.Names) != 2 {
		t.Fatalf("missing names = %v, want both required variables", missing.Names)
	}
	for _, want := range []string{"name", "ami"} {
		found := false
		for _, got := range missing.Names {
			if got == want {
				found = true
			}
		}
		if !found {
			t.Errorf("missing names = %v, want %q included", missing.Names, want)
		}
	}

	// A failed render must not bump the counter.
	m, err := reg.Get(ctx, "demo_instance")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if m.DownloadCount != 0 {
		t.Errorf("DownloadCount = %d after failed render, want 0", m.DownloadCount)
	}
}

func TestRender_NotFound(t *testing.T) {
	t.Parallel()
	reg := newTestRegistry(t)

	_, err := reg.Render(context.Background(), "ghost", nil)
	var nf *registry.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("Render() error = %v, want NotFoundError", err)
	}
}

func TestRender_IncrementsDownloadCount(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	reg := newTestRegistry(t)

	if _, err := reg.Register(ctx, instanceRequest()); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	values := map[string]registry.Value{
		"name": registry.String("box"),
		"ami":  registry.String("ami-1"),
	}
	for range 3 {
		if _, err := reg.Render(ctx, "demo_instance", values); err != nil {
			t.Fatalf("Render() error = %v", err)
		}
	}

	m, err := reg.Get(ctx, "demo_instance")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if m.DownloadCount != 3 {
		t.Errorf("DownloadCount = %d, want 3", m.DownloadCount)
	}
}

func TestRender_ConcurrentIncrementsAreNotLost(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	reg := newTestRegistry(t)

	if _, err := reg.Register(ctx, instanceRequest()); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	const renders = 20
	values := map[string]registry.Value{
		"name": registry.String("box"),
		"ami":  registry.String("ami-1"),
	}

	var wg sync.WaitGroup
	errs := make(chan error, renders)
	for range renders {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := reg.Render(ctx, "demo_instance", values); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent Render() error = %v", err)
	}

	m, err := reg.Get(ctx, "demo_instance")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if m.DownloadCount != renders {
		t.Errorf("DownloadCount = %d after %d concurrent renders, want %d", m.DownloadCount, renders, renders)
	}
}

func TestRender_EndToEnd(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	reg := newTestRegistry(t)

	_, err := reg.Register(ctx, registry.RegisterRequest{
		Name:         "demo",
		Provider:     "aws",
		ResourceType: "aws_instance",
		HCLTemplate:  `resource "aws_instance" "${var.name}" { ami = "${var.ami}" }`,
		Variables: []registry.Variable{
			{Name: "name", Type: "string", Required: true},
			{Name: "ami", Type: "string", Required: true},
		},
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	rendered, err := reg.Render(ctx, "demo", map[string]registry.Value{
		"name": registry.String("box"),
		"ami":  registry.String("ami-1"),
	})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(rendered, "box") || !strings.Contains(rendered, "ami-1") {
		t.Errorf("rendered text missing substituted literals:\n%s", rendered)
	}
	if strings.Contains(rendered, "${var.") {
		t.Errorf("rendered text still contains placeholders:\n%s", rendered)
	}
}
