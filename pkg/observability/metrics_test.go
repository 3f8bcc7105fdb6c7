package observability

import (
	"testing"
	"time"
)

func TestMetrics(t *testing.T) {
	// Create metrics once for all subtests
	m := NewMetrics()

	t.Run("NewMetrics", func(t *testing.T) {
		if m == nil {
			t.Fatal("NewMetrics returned nil")
		}

		// Verify all collectors are initialized
		if m.PlacementsTotal == nil {
			t.Error("PlacementsTotal not initialized")
		}
		if m.TreeRebuildsTotal == nil {
			t.Error("TreeRebuildsTotal not initialized")
		}
		if m.SearchDuration == nil {
			t.Error("SearchDuration not initialized")
		}
		if m.FrontierSize == nil {
			t.Error("FrontierSize not initialized")
		}
		if m.Registry() == nil {
			t.Error("Registry() returned nil")
		}
	})

	t.Run("RecordPlacement", func(t *testing.T) {
		m.RecordPlacement()

		for i := 0; i < 100; i++ {
			m.RecordPlacement()
		}
	})

	t.Run("RecordSearch", func(t *testing.T) {
		kinds := []string{"exhaustive", "kd", "vp", "forest"}
		for _, kind := range kinds {
			m.RecordSearch(kind, 50*time.Microsecond)
			m.RecordSearch(kind, 2*time.Millisecond)
		}
	})

	t.Run("RecordRebuild", func(t *testing.T) {
		m.RecordRebuild("kd")
		m.RecordRebuild("vp")

		for i := 0; i < 10; i++ {
			m.RecordRebuild("forest")
		}
	})

	t.Run("UpdateFrontierSize", func(t *testing.T) {
		m.UpdateFrontierSize(0)
		m.UpdateFrontierSize(1024)
		m.UpdateFrontierSize(65536)
	})
}

func TestMetricsImplementsRecorder(t *testing.T) {
	var _ Recorder = NewMetrics()
}

func TestConcurrentMetricUpdates(t *testing.T) {
	m := NewMetrics()
	done := make(chan bool, 10)

	for i := 0; i < 10; i++ {
		go func() {
			for j := 0; j < 10; j++ {
				m.RecordPlacement()
				m.RecordSearch("kd", time.Microsecond)
				m.UpdateFrontierSize(j)
			}
			done <- true
		}()
	}

	for i := 0; i < 10; i++ {
		<-done
	}
}

func BenchmarkRecordPlacement(b *testing.B) {
	m := NewMetrics()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.RecordPlacement()
	}
}

func BenchmarkRecordSearch(b *testing.B) {
	m := NewMetrics()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.RecordSearch("kd", time.Microsecond)
	}
}
