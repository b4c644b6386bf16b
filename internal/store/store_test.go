// SPDX-License-Identifier: MPL-2.0

package store_test

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/blackroad/tfregistry/internal/store"
	"github.com/blackroad/tfregistry/pkg/registry"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()

	st, err := store.Open(filepath.Join(t.TempDir(), "modules.db"), log.New(io.Discard))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func sampleModule(name string) *registry.Module {
	return &registry.Module{
		ID:           uuid.NewString(),
		Name:         name,
		Provider:     "aws",
		ResourceType: "aws_instance",
		Version:      "1.0.0",
		Description:  "sample",
		HCLTemplate:  `resource "aws_instance" "x" { ami = "${var.ami}" }`,
		Variables: []registry.Variable{
			{Name: "ami", Type: "string", Required: true},
			{Name: "size", Type: "number", Default: registry.Number(20)},
		},
		Outputs:   []registry.Output{{Name: "id", ValueExpression: "aws_instance.x.id"}},
		Examples:  []registry.Example{{Title: "Basic", HCLCode: "module \"m\" {}"}},
		Tags:      []string{"aws", "compute"},
		CreatedAt: time.Now().UTC(),
	}
}

func TestInsertAndGet_CollectionsRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := openTestStore(t)

	m := sampleModule("round_trip")
	if err := st.Insert(ctx, m); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	got, err := st.Get(ctx, m.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(got.Variables) != 2 {
		t.Fatalf("Variables = %+v, want 2 entries", got.Variables)
	}
	if got.Variables[1].Default.Text() != "20" {
		t.Errorf("numeric default round-tripped as %q, want \"20\"", got.Variables[1].Default.Text())
	}
	if got.Variables[0].Default.IsNull() != true {
		t.Error("absent default round-tripped as non-null")
	}
	if len(got.Outputs) != 1 || len(got.Examples) != 1 || len(got.Tags) != 2 {
		t.Errorf("collections lost: outputs=%d examples=%d tags=%d",
			len(got.Outputs), len(got.Examples), len(got.Tags))
	}
	if !got.CreatedAt.Equal(m.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, m.CreatedAt)
	}
}

func TestInsert_DuplicateNameIsErrNameExists(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := openTestStore(t)

	if err := st.Insert(ctx, sampleModule("dup")); err != nil {
		t.Fatalf("first Insert() error = %v", err)
	}
	err := st.Insert(ctx, sampleModule("dup"))
	if !errors.Is(err, registry.ErrNameExists) {
		t.Fatalf("second Insert() error = %v, want ErrNameExists", err)
	}
}

func TestGet_UnknownRefIsNotFound(t *testing.T) {
	t.Parallel()
	st := openTestStore(t)

	_, err := st.Get(context.Background(), "missing")
	var nf *registry.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("Get() error = %v, want NotFoundError", err)
	}
}

func TestDelete_ReportsWhetherRowExisted(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := openTestStore(t)

	m := sampleModule("to_delete")
	if err := st.Insert(ctx, m); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	removed, err := st.Delete(ctx, m.ID)
	if err != nil || !removed {
		t.Fatalf("Delete() = (%v, %v), want (true, nil)", removed, err)
	}
	removed, err = st.Delete(ctx, m.ID)
	if err != nil || removed {
		t.Fatalf("second Delete() = (%v, %v), want (false, nil)", removed, err)
	}
}

func TestIncrementDownloads(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := openTestStore(t)

	m := sampleModule("counted")
	if err := st.Insert(ctx, m); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	for range 5 {
		if err := st.IncrementDownloads(ctx, m.ID); err != nil {
			t.Fatalf("IncrementDownloads() error = %v", err)
		}
	}

	got, err := st.Get(ctx, m.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.DownloadCount != 5 {
		t.Errorf("DownloadCount = %d, want 5", got.DownloadCount)
	}
}

func TestOpen_CreatesParentDirectory(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "deeper", "modules.db")
	st, err := store.Open(path, log.New(io.Discard))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	st.Close()
}
