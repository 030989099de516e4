package audit

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/jmallard/countersign/pkg/pagination"
)

func shutdownTestDispatcher() *Dispatcher {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(nil, logger, pagination.Config{DefaultPageSize: 20, MaxPageSize: 100})
}

func TestRecordDuringIntakeCloseDoesNotPanic(t *testing.T) {
	d := shutdownTestDispatcher()

	var wg sync.WaitGroup
	start := make(chan struct{})

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			for j := 0; j < 256; j++ {
				d.Record(Entry{Action: ActionDocumentApproved, EntityID: "doc-1"})
			}
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		<-start
		d.closeIntake()
	}()

	close(start)
	wg.Wait()
}

func TestRecordAfterIntakeCloseReportsFailure(t *testing.T) {
	d := shutdownTestDispatcher()
	d.closeIntake()

	d.Record(Entry{Action: ActionDocumentRejected, EntityID: "doc-9"})

	select {
	case failure := <-d.Failures():
		if !errors.Is(failure.Err, ErrIntakeClosed) {
			t.Errorf("failure err = %v, want ErrIntakeClosed", failure.Err)
		}
		if failure.Entry.EntityID != "doc-9" {
			t.Errorf("failure entity = %q, want doc-9", failure.Entry.EntityID)
		}
	case <-time.After(time.Second):
		t.Fatal("no delivery failure surfaced for record after close")
	}
}

func TestCloseIntakeIdempotent(t *testing.T) {
	d := shutdownTestDispatcher()
	d.closeIntake()
	d.closeIntake()
}
