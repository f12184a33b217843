package link

import "testing"

func TestBatchAggregatesFailures(t *testing.T) {
	var b batch

	b.loadStarted()
	b.loadStarted()
	b.loadStarted()

	if _, done := b.loadFinished(true); done {
		t.Fatal("batch done after 1 of 3")
	}
	if _, done := b.loadFinished(false); done {
		t.Fatal("batch done after 2 of 3")
	}

	anyFailed, done := b.loadFinished(true)
	if !done {
		t.Fatal("batch not done after 3 of 3")
	}
	if !anyFailed {
		t.Error("one failure must make the aggregate failed")
	}

	// The failure flag resets once reported.
	b.loadStarted()
	if anyFailed, done := b.loadFinished(true); !done || anyFailed {
		t.Errorf("next batch: anyFailed=%v done=%v, want false true", anyFailed, done)
	}
}

func TestBatchAllSucceeded(t *testing.T) {
	var b batch
	b.loadStarted()
	b.loadStarted()

	b.loadFinished(true)
	if anyFailed, done := b.loadFinished(true); !done || anyFailed {
		t.Errorf("anyFailed=%v done=%v, want false true", anyFailed, done)
	}
}

func TestBatchUnderflowPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("loadFinished with nothing pending must panic")
		}
	}()
	var b batch
	b.loadFinished(true)
}
