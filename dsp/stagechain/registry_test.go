package stagechain

import (
	"errors"
	"testing"
)

func TestRegistryRegister(t *testing.T) {
	t.Parallel()

	factory := func(_ Context) (Runtime, error) { return &stubRuntime{}, nil }

	r := NewRegistry()

	if err := r.Register("stub", factory); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if r.Lookup("stub") == nil {
		t.Fatal("Lookup(stub) = nil after Register")
	}

	if r.Lookup("missing") != nil {
		t.Error("Lookup(missing) != nil")
	}

	if err := r.Register("stub", factory); !errors.Is(err, errDuplicateStage) {
		t.Errorf("duplicate Register() error = %v, want errDuplicateStage", err)
	}

	for _, name := range []string{"", InputNodeID, OutputNodeID} {
		if err := r.Register(name, factory); err == nil {
			t.Errorf("Register(%q) succeeded, want error", name)
		}
	}

	if err := r.Register("nil", nil); err == nil {
		t.Error("Register with nil factory succeeded, want error")
	}
}

func TestRegistryMustRegisterPanics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("MustRegister with reserved type did not panic")
		}
	}()

	NewRegistry().MustRegister(InputNodeID, func(_ Context) (Runtime, error) { return nil, nil })
}
