package queue_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shashiranjanraj/bistro/pkg/queue"
)

var (
	echoCalls atomic.Int32
	failCalls atomic.Int32
)

type echoJob struct {
	Val string
}

func (j *echoJob) Handle() error {
	echoCalls.Add(1)
	return nil
}

type failJob struct{}

func (j *failJob) Handle() error {
	failCalls.Add(1)
	return errors.New("always fails")
}

func init() {
	queue.StartWorkers(context.Background(), 2)
	queue.Register("*queue_test.echoJob", func() queue.Job { return &echoJob{} })
	queue.Register("*queue_test.failJob", func() queue.Job { return &failJob{} })
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestDispatchAndProcess(t *testing.T) {
	before := echoCalls.Load()
	if err := queue.Dispatch(&echoJob{Val: "hello"}); err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}
	waitFor(t, func() bool { return echoCalls.Load() > before })
}

func TestFailedJobIsRetriedAndRecorded(t *testing.T) {
	queue.SetMaxRetry(2)
	defer queue.SetMaxRetry(3)

	before := failCalls.Load()
	if err := queue.Dispatch(&failJob{}); err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}

	waitFor(t, func() bool { return failCalls.Load() >= before+2 })
	waitFor(t, func() bool { return len(queue.FailedJobs()) > 0 })

	failed := queue.FailedJobs()
	last := failed[len(failed)-1]
	if last.Type != "*queue_test.failJob" {
		t.Errorf("failed job type = %q", last.Type)
	}
	if last.Err == nil {
		t.Error("expected failure error to be recorded")
	}
}
