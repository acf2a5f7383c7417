package custodytest

import (
	"github.com/iov-one/custody"
)

// Handler implements a mock of custody.Handler.
//
// Use this handler in your tests. Set XxxResult and XxxErr to control what
// Xxx method call returns. Each method call is counted.
type Handler struct {
	checkCall   int
	CheckResult custody.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult custody.DeliverResult
	DeliverErr    error
}

var _ custody.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	h.checkCall++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	h.deliverCall++
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

// CallCount returns the total number of calls to both methods.
func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}

// Decorator implements a mock of custody.Decorator. It passes the call to
// the next handler, unless an error is configured.
type Decorator struct {
	calls      int
	CheckErr   error
	DeliverErr error
}

var _ custody.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx, next custody.Checker) (*custody.CheckResult, error) {
	d.calls++
	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx, next custody.Deliverer) (*custody.DeliverResult, error) {
	d.calls++
	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

// CallCount returns the total number of calls to both methods.
func (d *Decorator) CallCount() int {
	return d.calls
}

// Decorate wraps given handler with a decorator.
func Decorate(h custody.Handler, d custody.Decorator) custody.Handler {
	return &decoratedHandler{hn: h, dc: d}
}

type decoratedHandler struct {
	hn custody.Handler
	dc custody.Decorator
}

func (d *decoratedHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	return d.dc.Check(ctx, db, tx, d.hn)
}

func (d *decoratedHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	return d.dc.Deliver(ctx, db, tx, d.hn)
}
