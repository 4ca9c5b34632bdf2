package memory

import (
	"testing"

	"github.com/ajshul/focusflow/internal/store"
	"github.com/ajshul/focusflow/internal/store/storetest"
)

func TestCompliance(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store { return New() })
}

func TestMonotonicity(t *testing.T) {
	storetest.RunMonotonicity(t, func(t *testing.T) store.Store { return New() })
}
