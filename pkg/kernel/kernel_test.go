package kernel_test

import (
	"testing"

	"github.com/brickingsoft/faio/pkg/kernel"
)

func TestGet(t *testing.T) {
	v, err := kernel.Get()
	if err != nil {
		t.Log("kernel.Get unsupported on this platform:", err)
		return
	}
	t.Log(v)
}
