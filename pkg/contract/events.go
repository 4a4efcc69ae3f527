package contract

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/nspcc-dev/alephium-go/pkg/noderpc"
	"github.com/nspcc-dev/alephium-go/pkg/noderpc/result"
	"github.com/nspcc-dev/alephium-go/pkg/smartcontract"
	"github.com/nspcc-dev/alephium-go/pkg/smartcontract/abi"
)

// System events emitted by the node itself.
const (
	ContractCreatedEventIndex   = -1
	ContractDestroyedEventIndex = -2

	ContractCreatedEvent   = "ContractCreated"
	ContractDestroyedEvent = "ContractDestroyed"
)

// DefaultEventsPollInterval is the interval SubscribeEvents polls the node
// with unless configured otherwise.
const DefaultEventsPollInterval = 4 * time.Second

var systemEventSig = abi.EventSig{FieldNames: []string{"address"}, FieldTypes: []string{abi.AddressType}}

// ContractEvent is an event with fields decoded according to the emitting
// contract artifact.
type ContractEvent struct {
	BlockHash       string
	TxID            string
	ContractAddress string
	Name            string
	EventIndex      int
	Fields          smartcontract.NamedVals
}

// SortEventsByName sorts events by name, events with equal names keep their
// order.
func SortEventsByName(events []ContractEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Name < events[j].Name
	})
}

// decodeEvent decodes raw event fields emitted by c. c can be nil for system
// events.
func decodeEvent(c *Contract, index int, vals []noderpc.Val) (string, smartcontract.NamedVals, error) {
	var (
		name string
		sig  *abi.EventSig
	)
	switch index {
	case ContractCreatedEventIndex:
		name, sig = ContractCreatedEvent, &systemEventSig
	case ContractDestroyedEventIndex:
		name, sig = ContractDestroyedEvent, &systemEventSig
	default:
		if c == nil {
			return "", nil, fmt.Errorf("%w: event %d emitted by an unknown contract", ErrUnknownContract, index)
		}
		var ok bool
		sig, ok = c.Event(index)
		if !ok {
			return "", nil, fmt.Errorf("contract %s has no event %d", c.Name(), index)
		}
		name = sig.Name
	}
	if index < 0 && len(vals) > len(sig.FieldNames) {
		vals = vals[:len(sig.FieldNames)]
	}
	fields, err := smartcontract.FromVals(sig.FieldNames, sig.FieldTypes, vals)
	if err != nil {
		return "", nil, fmt.Errorf("event %s: %w", name, err)
	}
	return name, fields, nil
}

// resolver matches contracts mentioned in node responses with artifacts.
type resolver struct {
	reg    *Registry
	byHash map[string]*Contract
	byAddr map[string]*Contract
}

func newResolver(self *Contract, selfAddr string, existing []*ContractState) *resolver {
	r := &resolver{
		reg:    DefaultRegistry,
		byHash: make(map[string]*Contract),
		byAddr: make(map[string]*Contract),
	}
	for _, st := range existing {
		if st.contract != nil {
			r.byHash[st.CodeHash] = st.contract
			r.byAddr[st.Address] = st.contract
		}
	}
	if self != nil {
		r.byHash[self.CodeHash()] = self
		if selfAddr != "" {
			r.byAddr[selfAddr] = self
		}
	}
	return r
}

func (r *resolver) lookup(codeHash string) (*Contract, bool) {
	if c, ok := r.byHash[codeHash]; ok {
		return c, true
	}
	return r.reg.LookupByCodeHash(codeHash)
}

func (r *resolver) states(raw []noderpc.ContractState) ([]*ContractState, error) {
	res := make([]*ContractState, 0, len(raw))
	for i := range raw {
		c, ok := r.lookup(raw[i].CodeHash)
		if !ok {
			return nil, fmt.Errorf("%w: code hash %s at %s", ErrUnknownContract, raw[i].CodeHash, raw[i].Address)
		}
		st, err := c.decodeState(&raw[i])
		if err != nil {
			return nil, err
		}
		r.byAddr[st.Address] = c
		res = append(res, st)
	}
	return res, nil
}

func (r *resolver) events(raw []result.ContractEventByTxID, txID string) ([]ContractEvent, error) {
	res := make([]ContractEvent, 0, len(raw))
	for _, ev := range raw {
		name, fields, err := decodeEvent(r.byAddr[ev.ContractAddress], ev.EventIndex, ev.Fields)
		if err != nil {
			return nil, fmt.Errorf("event of %s: %w", ev.ContractAddress, err)
		}
		res = append(res, ContractEvent{
			BlockHash:       ev.BlockHash,
			TxID:            txID,
			ContractAddress: ev.ContractAddress,
			Name:            name,
			EventIndex:      ev.EventIndex,
			Fields:          fields,
		})
	}
	return res, nil
}

// EventReader is used to get events emitted by deployed contracts.
type EventReader interface {
	GetContractEvents(ctx context.Context, addr string, start int, limit int) (*result.ContractEvents, error)
	GetContractEventsCurrentCount(ctx context.Context, addr string) (int, error)
}

// EventsCurrentCount returns the number of events emitted by the contract at
// addr so far. It can be used as a starting point for SubscribeEvents.
func EventsCurrentCount(ctx context.Context, r EventReader, addr string) (int, error) {
	return r.GetContractEventsCurrentCount(ctx, addr)
}

// FetchEvents gets a page of events emitted by the contract at addr starting
// from the start counter. It returns decoded events and the counter to
// continue from.
func FetchEvents(ctx context.Context, r EventReader, c *Contract, addr string, start int, limit int) ([]ContractEvent, int, error) {
	page, err := r.GetContractEvents(ctx, addr, start, limit)
	if err != nil {
		return nil, start, err
	}
	res := make([]ContractEvent, 0, len(page.Events))
	for _, ev := range page.Events {
		name, fields, err := decodeEvent(c, ev.EventIndex, ev.Fields)
		if err != nil {
			return nil, start, err
		}
		res = append(res, ContractEvent{
			BlockHash:       ev.BlockHash,
			TxID:            ev.TxID,
			ContractAddress: addr,
			Name:            name,
			EventIndex:      ev.EventIndex,
			Fields:          fields,
		})
	}
	return res, page.NextStart, nil
}

// SubscribeOptions contains SubscribeEvents parameters.
type SubscribeOptions struct {
	// PollInterval is the time between node requests,
	// DefaultEventsPollInterval is used if not set.
	PollInterval time.Duration
	// Limit is the maximum number of events requested at once, the node
	// default is used if not set.
	Limit int
}

// Subscription is an active event subscription created by SubscribeEvents.
type Subscription struct {
	cancel context.CancelFunc
	done   chan struct{}

	lock sync.Mutex
	err  error
}

// SubscribeEvents polls the node for events of the contract at addr
// starting from the fromCount counter and sends them to rcvr. Polling stops
// when ctx is done, Unsubscribe is called or a request fails; rcvr is closed
// then and Err returns the reason.
func SubscribeEvents(ctx context.Context, r EventReader, c *Contract, addr string, fromCount int, rcvr chan<- ContractEvent, opts SubscribeOptions) *Subscription {
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultEventsPollInterval
	}
	ctx, cancel := context.WithCancel(ctx)
	s := &Subscription{
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go s.poll(ctx, r, c, addr, fromCount, rcvr, opts)
	return s
}

func (s *Subscription) poll(ctx context.Context, r EventReader, c *Contract, addr string, next int, rcvr chan<- ContractEvent, opts SubscribeOptions) {
	defer close(s.done)
	defer close(rcvr)

	timer := time.NewTimer(0)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			s.setErr(ctx.Err())
			return
		case <-timer.C:
		}
		events, nextStart, err := FetchEvents(ctx, r, c, addr, next, opts.Limit)
		if err != nil {
			s.setErr(err)
			return
		}
		for _, ev := range events {
			select {
			case rcvr <- ev:
			case <-ctx.Done():
				s.setErr(ctx.Err())
				return
			}
		}
		next = nextStart
		if len(events) == 0 {
			timer.Reset(opts.PollInterval)
		} else {
			timer.Reset(0)
		}
	}
}

func (s *Subscription) setErr(err error) {
	s.lock.Lock()
	s.err = err
	s.lock.Unlock()
}

// Unsubscribe stops the subscription and waits for the receiver channel to be
// closed.
func (s *Subscription) Unsubscribe() {
	s.cancel()
	<-s.done
}

// Err returns the reason the subscription was stopped, it's nil while the
// subscription is active and after cancellation.
func (s *Subscription) Err() error {
	s.lock.Lock()
	defer s.lock.Unlock()
	if errors.Is(s.err, context.Canceled) {
		return nil
	}
	return s.err
}
