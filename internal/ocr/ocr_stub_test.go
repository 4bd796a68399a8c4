// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

//go:build !ocr

package ocr

import (
	"errors"
	"testing"
)

func TestStubNew(t *testing.T) {
	e, err := New("por")
	if !errors.Is(err, ErrNotEnabled) {
		t.Errorf("New error = %v, want ErrNotEnabled", err)
	}
	if e != nil {
		t.Errorf("New engine = %v, want nil", e)
	}
}

func TestStubRecognize(t *testing.T) {
	var e *Engine
	if _, err := e.Recognize([]byte("png bytes")); !errors.Is(err, ErrNotEnabled) {
		t.Errorf("Recognize error = %v, want ErrNotEnabled", err)
	}
}

func TestStubCloseIsSafe(t *testing.T) {
	var e *Engine
	if err := e.Close(); err != nil {
		t.Errorf("Close on nil engine = %v, want nil", err)
	}
}
