/*
Package waiter provides transaction awaiting functionality. Transactions are
considered to be accepted when the node reports them as confirmed with at
least the configured number of chain confirmations.
*/
package waiter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nspcc-dev/alephium-go/pkg/noderpc/result"
)

const (
	// DefaultPollRetryCount is a threshold for a number of subsequent failed
	// attempts to get transaction status from the node for PollingBased. If it
	// fails to retrieve status DefaultPollRetryCount times in a row then
	// transaction awaiting attempt considered to be failed and an error is
	// returned.
	DefaultPollRetryCount = 3
	// DefaultPollInterval is the default time between subsequent status
	// requests.
	DefaultPollInterval = time.Second
	// DefaultConfirmations is the default number of chain confirmations.
	DefaultConfirmations = 1
)

var (
	// ErrContextDone is returned when Waiter context has been done in the middle
	// of transaction awaiting process and no result was received yet.
	ErrContextDone = errors.New("waiter context done")
	// ErrAwaitingNotSupported is returned from Wait method if Waiter instance
	// doesn't support transaction awaiting. It's compatible with [errors.ErrUnsupported].
	ErrAwaitingNotSupported = fmt.Errorf("%w: awaiting", errors.ErrUnsupported)
	// ErrMissedEvent is returned when RPCEventBased closes receiver channel
	// which happens when the connection to the node is lost.
	ErrMissedEvent = errors.New("some event was missed")
)

type (
	// Waiter is an interface providing transaction awaiting functionality.
	Waiter interface {
		// Wait allows to wait until transaction will be confirmed. It can be
		// used as a wrapper for SubmitTransaction and accepts transaction id
		// and an error, the error is returned as is if it's not nil. It
		// returns the status of the confirmed transaction.
		Wait(ctx context.Context, txID string, err error) (*result.TxStatus, error)
	}
	// RPCPollingBased is an interface that enables transaction awaiting
	// functionality based on periodical transaction status polls.
	RPCPollingBased interface {
		GetTransactionStatus(ctx context.Context, txID string) (*result.TxStatus, error)
	}
	// RPCEventBased is an interface that enables improved transaction awaiting
	// functionality based on web-socket block notifications. RPCEventBased
	// contains RPCPollingBased under the hood and falls back to polling when
	// subscription-based awaiting fails.
	RPCEventBased interface {
		RPCPollingBased

		ReceiveBlocks(rcvr chan<- *result.BlockNotify) (string, error)
		Unsubscribe(id string) error
	}
)

// Null is a Waiter stub that doesn't support transaction awaiting functionality.
type Null struct{}

// PollingBased is a polling-based Waiter.
type PollingBased struct {
	polling RPCPollingBased
	config  PollConfig
}

// Config is a unified configuration for [Waiter] implementations that allows to
// customize awaiting behaviour.
type Config struct {
	PollConfig
}

// PollConfig is a configuration for PollingBased waiter.
type PollConfig struct {
	// PollInterval is a time interval between subsequent polls,
	// DefaultPollInterval if not set.
	PollInterval time.Duration
	// RetryCount is the number of retry attempts while fetching transaction
	// status before an error is returned from Wait.
	RetryCount int
	// Confirmations is the number of chain confirmations required,
	// DefaultConfirmations if not set.
	Confirmations int
}

// EventBased is a websocket-based Waiter.
type EventBased struct {
	ws      RPCEventBased
	polling *PollingBased
}

// New creates Waiter instance. It can be either websocket-based or
// polling-base, otherwise Waiter stub is returned. As a first argument
// it accepts RPCEventBased implementation, RPCPollingBased implementation
// or not an implementation of these two interfaces. It returns websocket-based
// waiter, polling-based waiter or a stub correspondingly.
func New(base any) Waiter {
	return NewCustom(base, Config{})
}

// NewCustom is the same as New, but allows to specify [Waiter] configuration.
func NewCustom(base any, config Config) Waiter {
	if eventW, ok := base.(RPCEventBased); ok {
		return NewCustomEventBased(eventW, config)
	}
	if pollW, ok := base.(RPCPollingBased); ok {
		return NewCustomPollingBased(pollW, config.PollConfig)
	}
	return NewNull()
}

// NewNull creates an instance of Waiter stub.
func NewNull() Null {
	return Null{}
}

// Wait implements Waiter interface.
func (Null) Wait(_ context.Context, _ string, err error) (*result.TxStatus, error) {
	if err != nil {
		return nil, err
	}
	return nil, ErrAwaitingNotSupported
}

// NewPollingBased creates an instance of Waiter supporting poll-based transaction awaiting.
func NewPollingBased(waiter RPCPollingBased) *PollingBased {
	return NewCustomPollingBased(waiter, PollConfig{})
}

// NewCustomPollingBased creates an instance of Waiter supporting poll-based
// transaction awaiting. Poll options may be specified via config parameter,
// defaults are used for unset ones.
func NewCustomPollingBased(waiter RPCPollingBased, config PollConfig) *PollingBased {
	if config.PollInterval <= 0 {
		config.PollInterval = DefaultPollInterval
	}
	if config.RetryCount <= 0 {
		config.RetryCount = DefaultPollRetryCount
	}
	if config.Confirmations <= 0 {
		config.Confirmations = DefaultConfirmations
	}
	return &PollingBased{
		polling: waiter,
		config:  config,
	}
}

// accepted returns the status if the transaction has enough confirmations.
func (w *PollingBased) accepted(ctx context.Context, txID string) (*result.TxStatus, error) {
	st, err := w.polling.GetTransactionStatus(ctx, txID)
	if err != nil {
		return nil, err
	}
	if st.Confirmed() && st.ChainConfirmations >= w.config.Confirmations {
		return st, nil
	}
	return nil, nil
}

// Wait implements Waiter interface.
func (w *PollingBased) Wait(ctx context.Context, txID string, err error) (*result.TxStatus, error) {
	if err != nil {
		return nil, err
	}
	var failedAttempt int
	timer := time.NewTicker(w.config.PollInterval)
	defer timer.Stop()
	for {
		select {
		case <-timer.C:
			st, err := w.accepted(ctx, txID)
			if err != nil {
				failedAttempt++
				if failedAttempt > w.config.RetryCount {
					return nil, fmt.Errorf("failed to retrieve transaction status: %w", err)
				}
				continue
			}
			failedAttempt = 0
			if st != nil {
				return st, nil
			}
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %w", ErrContextDone, ctx.Err())
		}
	}
}

// NewEventBased creates an instance of Waiter supporting websocket event-based
// transaction awaiting. EventBased contains PollingBased under the hood and
// falls back to polling when subscription-based awaiting fails.
func NewEventBased(waiter RPCEventBased) *EventBased {
	return NewCustomEventBased(waiter, Config{})
}

// NewCustomEventBased is the same as NewEventBased, but allows to specify
// Waiter configuration options (defaults are used if not specified).
func NewCustomEventBased(waiter RPCEventBased, config Config) *EventBased {
	return &EventBased{
		ws:      waiter,
		polling: NewCustomPollingBased(waiter, config.PollConfig),
	}
}

// Wait implements Waiter interface. Transaction status is checked on every
// new block.
func (w *EventBased) Wait(ctx context.Context, txID string, err error) (res *result.TxStatus, waitErr error) {
	if err != nil {
		return nil, err
	}
	var (
		wsWaitErr     error
		waitersActive int
		failedAttempt int
		bRcvr         = make(chan *result.BlockNotify, 2)
		unsubErrs     = make(chan error)
		exit          = make(chan struct{})
	)

	blocksID, err := w.ws.ReceiveBlocks(bRcvr)
	if err != nil {
		wsWaitErr = fmt.Errorf("failed to subscribe for new blocks: %w", err)
	} else {
		waitersActive++
		go func() {
			<-exit
			err := w.ws.Unsubscribe(blocksID)
			if err != nil {
				unsubErrs <- fmt.Errorf("failed to unsubscribe from blocks (id: %s): %w", blocksID, err)
				return
			}
			unsubErrs <- nil
		}()
		// There is a potential race between subscription and acceptance, so
		// do a polling check once _after_ the subscription.
		res, _ = w.polling.accepted(ctx, txID)
	}

waitLoop:
	for wsWaitErr == nil && res == nil && waitErr == nil {
		select {
		case _, ok := <-bRcvr:
			if !ok {
				// We're toast, retry with non-ws client.
				bRcvr = nil
				wsWaitErr = ErrMissedEvent
				break waitLoop
			}
			st, err := w.polling.accepted(ctx, txID)
			if err != nil {
				failedAttempt++
				if failedAttempt > w.polling.config.RetryCount {
					waitErr = fmt.Errorf("failed to retrieve transaction status: %w", err)
				}
				continue
			}
			failedAttempt = 0
			res = st
		case <-ctx.Done():
			waitErr = fmt.Errorf("%w: %w", ErrContextDone, ctx.Err())
		}
	}
	close(exit)

	if waitersActive > 0 {
		// Drain receivers to avoid other notification receivers blocking.
	drainLoop:
		for {
			select {
			case _, ok := <-bRcvr:
				if !ok {
					bRcvr = nil
				}
			case unsubErr := <-unsubErrs:
				if unsubErr != nil && bRcvr != nil {
					errFmt := "unsubscription error: %w"
					errArgs := []any{unsubErr}
					if waitErr != nil {
						errFmt = "%w; " + errFmt
						errArgs = append([]any{waitErr}, errArgs...)
					}
					waitErr = fmt.Errorf(errFmt, errArgs...)
				}
				break drainLoop
			}
		}
	}

	// Rollback to a poll-based waiter if needed.
	if wsWaitErr != nil && waitErr == nil {
		res, waitErr = w.polling.Wait(ctx, txID, nil)
		if waitErr != nil {
			// Wrap the poll-based error, it's more important.
			waitErr = fmt.Errorf("event-based error: %w; poll-based waiter error: %w", wsWaitErr, waitErr)
		}
	}
	return
}
