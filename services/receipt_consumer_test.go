package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vinicius342/AnotaJa-sub000/models"
	"github.com/vinicius342/AnotaJa-sub000/services"
)

type fakeSession struct {
	ctx     context.Context
	marked  []int64
	commits int
}

func (s *fakeSession) Claims() map[string][]int32 { return map[string][]int32{"order-receipts": {0}} }
func (s *fakeSession) MemberID() string           { return "member-1" }
func (s *fakeSession) GenerationID() int32        { return 1 }
func (s *fakeSession) MarkOffset(string, int32, int64, string) {
}
func (s *fakeSession) Commit() { s.commits++ }
func (s *fakeSession) ResetOffset(string, int32, int64, string) {
}
func (s *fakeSession) MarkMessage(msg *sarama.ConsumerMessage, _ string) {
	s.marked = append(s.marked, msg.Offset)
}
func (s *fakeSession) Context() context.Context { return s.ctx }

type fakeClaim struct {
	messages chan *sarama.ConsumerMessage
}

func (c *fakeClaim) Topic() string                            { return "order-receipts" }
func (c *fakeClaim) Partition() int32                         { return 0 }
func (c *fakeClaim) InitialOffset() int64                     { return 0 }
func (c *fakeClaim) HighWaterMarkOffset() int64               { return int64(len(c.messages)) }
func (c *fakeClaim) Messages() <-chan *sarama.ConsumerMessage { return c.messages }

func claimOf(values ...[]byte) *fakeClaim {
	claim := &fakeClaim{messages: make(chan *sarama.ConsumerMessage, len(values))}
	for i, v := range values {
		claim.messages <- &sarama.ConsumerMessage{Topic: "order-receipts", Offset: int64(i), Value: v}
	}
	close(claim.messages)
	return claim
}

func receiptPayload(t *testing.T, orderID uint) []byte {
	payload, err := json.Marshal(models.Receipt{
		OrderID: orderID,
		Type:    models.OrderTypePickup,
		Lines:   []models.ReceiptLine{{Name: "Burger", Quantity: 1, UnitPrice: money("10.00"), Total: money("10.00")}},
		Total:   money("10.00"),
	})
	require.NoError(t, err)
	return payload
}

func TestReceiptConsumer_HandlesAndCommitsEachReceipt(t *testing.T) {
	var handled []uint
	consumer := services.NewReceiptConsumer(func(_ context.Context, r models.Receipt) error {
		handled = append(handled, r.OrderID)
		return nil
	}, discard)
	session := &fakeSession{ctx: context.Background()}

	err := consumer.ConsumeClaim(session, claimOf(receiptPayload(t, 7), receiptPayload(t, 8)))

	require.NoError(t, err)
	assert.Equal(t, []uint{7, 8}, handled)
	assert.Equal(t, []int64{0, 1}, session.marked)
	assert.Equal(t, 2, session.commits)
}

func TestReceiptConsumer_SkipsMalformedPayload(t *testing.T) {
	var handled []uint
	consumer := services.NewReceiptConsumer(func(_ context.Context, r models.Receipt) error {
		handled = append(handled, r.OrderID)
		return nil
	}, discard)
	session := &fakeSession{ctx: context.Background()}

	err := consumer.ConsumeClaim(session, claimOf(
		[]byte("not json"),
		[]byte(`{"order_id":3,"unexpected":true}`),
		[]byte(`{"type":"pickup"}`),
		receiptPayload(t, 4),
	))

	require.NoError(t, err)
	assert.Equal(t, []uint{4}, handled)
	assert.Equal(t, []int64{0, 1, 2, 3}, session.marked)
}

func TestReceiptConsumer_HandlerErrorLeavesMessageUncommitted(t *testing.T) {
	consumer := services.NewReceiptConsumer(func(context.Context, models.Receipt) error {
		return errors.New("printer offline")
	}, discard)
	session := &fakeSession{ctx: context.Background()}

	err := consumer.ConsumeClaim(session, claimOf(receiptPayload(t, 9), receiptPayload(t, 10)))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "order 9")
	assert.Empty(t, session.marked)
	assert.Zero(t, session.commits)
}

func TestReceiptConsumer_StopsWhenSessionEnds(t *testing.T) {
	consumer := services.NewReceiptConsumer(func(context.Context, models.Receipt) error { return nil }, discard)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	open := &fakeClaim{messages: make(chan *sarama.ConsumerMessage)}

	err := consumer.ConsumeClaim(&fakeSession{ctx: ctx}, open)

	assert.NoError(t, err)
}

type fakeGroup struct {
	sarama.ConsumerGroup
	calls  int
	cancel context.CancelFunc
	err    error
}

func (g *fakeGroup) Consume(_ context.Context, topics []string, _ sarama.ConsumerGroupHandler) error {
	g.calls++
	if g.err != nil {
		return g.err
	}
	if g.calls == 2 {
		g.cancel()
	}
	return nil
}

func TestConsumeReceipts_RejoinsUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	group := &fakeGroup{cancel: cancel}

	err := services.ConsumeReceipts(ctx, group, "order-receipts", services.NewReceiptConsumer(nil, discard))

	require.NoError(t, err)
	assert.Equal(t, 2, group.calls)
}

func TestConsumeReceipts_ClosedGroupIsNotAnError(t *testing.T) {
	group := &fakeGroup{err: sarama.ErrClosedConsumerGroup}

	err := services.ConsumeReceipts(context.Background(), group, "order-receipts", services.NewReceiptConsumer(nil, discard))

	assert.NoError(t, err)
	assert.Equal(t, 1, group.calls)
}

func TestConsumeReceipts_PropagatesGroupError(t *testing.T) {
	group := &fakeGroup{err: sarama.ErrOutOfBrokers}

	err := services.ConsumeReceipts(context.Background(), group, "order-receipts", services.NewReceiptConsumer(nil, discard))

	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
}
