package worker_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/redis/go-redis/v9"

	"joywork.app/api/internal/queue"
	"joywork.app/api/internal/worker"
)

type fakeStream struct {
	pending    []redis.XPendingExt
	pendingErr error
	entries    map[string]redis.XMessage
	claimErrs  map[string]error

	pendingArgs *redis.XPendingExtArgs
	claims      []*redis.XClaimArgs
}

func (f *fakeStream) XPendingExt(ctx context.Context, a *redis.XPendingExtArgs) *redis.XPendingExtCmd {
	f.pendingArgs = a
	cmd := redis.NewXPendingExtCmd(ctx)
	if f.pendingErr != nil {
		cmd.SetErr(f.pendingErr)
		return cmd
	}
	cmd.SetVal(f.pending)
	return cmd
}

func (f *fakeStream) XClaim(ctx context.Context, a *redis.XClaimArgs) *redis.XMessageSliceCmd {
	f.claims = append(f.claims, a)
	cmd := redis.NewXMessageSliceCmd(ctx)
	id := a.Messages[0]
	if err := f.claimErrs[id]; err != nil {
		cmd.SetErr(err)
		return cmd
	}
	if entry, ok := f.entries[id]; ok {
		cmd.SetVal([]redis.XMessage{entry})
		return cmd
	}
	cmd.SetVal([]redis.XMessage{})
	return cmd
}

func streamEntry(id string) redis.XMessage {
	return redis.XMessage{
		ID: id,
		Values: map[string]any{
			"task_type":       "notification",
			"notification_id": "7",
			"kind":            "ticket_created",
			"to":              "owner@acme.test",
			"subject":         "New support ticket",
			"body":            "Hi",
			"attempt":         "1",
		},
	}
}

var _ = Describe("Reclaimer", func() {
	var (
		ctx       context.Context
		stream    *fakeStream
		consumer  *fakeConsumer
		processed []queue.Message
		procErr   error
		cfg       worker.ReclaimerConfig
	)

	reclaimer := func() *worker.Reclaimer {
		return worker.NewReclaimer(stream, cfg, consumer, func(_ context.Context, msg queue.Message) error {
			processed = append(processed, msg)
			return procErr
		})
	}

	BeforeEach(func() {
		ctx = context.Background()
		stream = &fakeStream{entries: map[string]redis.XMessage{}, claimErrs: map[string]error{}}
		consumer = &fakeConsumer{}
		processed = nil
		procErr = nil
		cfg = worker.ReclaimerConfig{
			Stream:        "joywork_notifications",
			Group:         "joywork_mailers",
			Consumer:      "mailer-1-reclaimer",
			MinIdle:       5 * time.Minute,
			Interval:      time.Hour,
			BatchSize:     10,
			MaxDeliveries: 3,
		}
	})

	It("does nothing when no entry is stale", func() {
		n, err := reclaimer().ReclaimOnce(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(BeZero())
		Expect(stream.pendingArgs.Idle).To(Equal(5 * time.Minute))
		Expect(stream.pendingArgs.Count).To(Equal(int64(10)))
		Expect(stream.claims).To(BeEmpty())
	})

	It("claims stale entries and hands them to the processor", func() {
		stream.pending = []redis.XPendingExt{{ID: "1-0", Consumer: "mailer-2", Idle: 10 * time.Minute, RetryCount: 1}}
		stream.entries["1-0"] = streamEntry("1-0")

		n, err := reclaimer().ReclaimOnce(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(1))

		Expect(stream.claims).To(HaveLen(1))
		Expect(stream.claims[0].Consumer).To(Equal("mailer-1-reclaimer"))
		Expect(processed).To(HaveLen(1))
		Expect(processed[0].ID).To(Equal("1-0"))
		Expect(processed[0].Task.To).To(Equal("owner@acme.test"))
		Expect(consumer.dlq).To(BeEmpty())
	})

	It("counts a processor failure as claimed", func() {
		stream.pending = []redis.XPendingExt{{ID: "1-0", RetryCount: 1}}
		stream.entries["1-0"] = streamEntry("1-0")
		procErr = errors.New("421")

		n, err := reclaimer().ReclaimOnce(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(1))
		Expect(processed).To(HaveLen(1))
	})

	It("sends entries that keep stalling to the DLQ without sending again", func() {
		stream.pending = []redis.XPendingExt{{ID: "1-0", RetryCount: 3}}
		stream.entries["1-0"] = streamEntry("1-0")

		n, err := reclaimer().ReclaimOnce(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(1))
		Expect(processed).To(BeEmpty())
		Expect(consumer.dlq).To(Equal([]string{"1-0"}))
		Expect(consumer.reasons[0]).To(ContainSubstring("3 times"))
	})

	It("retries regardless of deliveries when the cap is off", func() {
		cfg.MaxDeliveries = 0
		stream.pending = []redis.XPendingExt{{ID: "1-0", RetryCount: 40}}
		stream.entries["1-0"] = streamEntry("1-0")

		_, err := reclaimer().ReclaimOnce(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(processed).To(HaveLen(1))
		Expect(consumer.dlq).To(BeEmpty())
	})

	It("acks entries it cannot parse", func() {
		stream.pending = []redis.XPendingExt{{ID: "1-0", RetryCount: 1}}
		stream.entries["1-0"] = redis.XMessage{ID: "1-0", Values: map[string]any{"task_type": "pipeline"}}

		n, err := reclaimer().ReclaimOnce(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(1))
		Expect(processed).To(BeEmpty())
		Expect(consumer.ackedIDs()).To(Equal([]string{"1-0"}))
	})

	It("skips entries another worker claimed first", func() {
		stream.pending = []redis.XPendingExt{{ID: "1-0", RetryCount: 1}}

		n, err := reclaimer().ReclaimOnce(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(BeZero())
		Expect(processed).To(BeEmpty())
	})

	It("keeps going when one claim fails", func() {
		stream.pending = []redis.XPendingExt{{ID: "1-0", RetryCount: 1}, {ID: "2-0", RetryCount: 1}}
		stream.claimErrs["1-0"] = errors.New("NOGROUP")
		stream.entries["2-0"] = streamEntry("2-0")

		n, err := reclaimer().ReclaimOnce(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(1))
		Expect(processed).To(HaveLen(1))
		Expect(processed[0].ID).To(Equal("2-0"))
	})

	It("reports a failed pending scan", func() {
		stream.pendingErr = errors.New("connection refused")

		_, err := reclaimer().ReclaimOnce(ctx)
		Expect(err).To(MatchError(ContainSubstring("xpending")))
	})

	It("stops when asked", func() {
		r := reclaimer()
		done := make(chan struct{})
		go func() {
			r.Run(ctx)
			close(done)
		}()

		r.Stop()
		Eventually(done).Should(BeClosed())
	})
})
