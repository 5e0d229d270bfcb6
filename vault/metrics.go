// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vault

import (
	"github.com/ava-labs/avalanchego/utils/metric"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	deposits         prometheus.Counter
	withdraws        prometheus.Counter
	nativeDeposits   prometheus.Counter
	nativeWithdraws  prometheus.Counter
	nativeReceipts   prometheus.Counter
	reserveSyncs     prometheus.Counter
	ordersForwarded  prometheus.Counter
	cancelsForwarded prometheus.Counter
	reentriesBlocked prometheus.Counter

	baseReserve  prometheus.Gauge
	quoteReserve prometheus.Gauge
	shareSupply  prometheus.Gauge

	depositProcess  metric.Averager
	withdrawProcess metric.Averager
}

func newMetrics(r *prometheus.Registry) (*metrics, error) {
	depositProcess, err := metric.NewAverager(
		"vault",
		"deposit_process",
		"time spent processing deposits",
		r,
	)
	if err != nil {
		return nil, err
	}
	withdrawProcess, err := metric.NewAverager(
		"vault",
		"withdraw_process",
		"time spent processing withdrawals",
		r,
	)
	if err != nil {
		return nil, err
	}

	m := &metrics{
		deposits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vault",
			Name:      "deposits",
			Help:      "number of deposits applied",
		}),
		withdraws: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vault",
			Name:      "withdraws",
			Help:      "number of withdrawals applied",
		}),
		nativeDeposits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vault",
			Name:      "native_deposits",
			Help:      "number of deposits funded with native value",
		}),
		nativeWithdraws: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vault",
			Name:      "native_withdraws",
			Help:      "number of withdrawals paid out as native value",
		}),
		nativeReceipts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vault",
			Name:      "native_receipts",
			Help:      "number of bare native receipts accepted",
		}),
		reserveSyncs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vault",
			Name:      "reserve_syncs",
			Help:      "number of administrative reserve resynchronizations",
		}),
		ordersForwarded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vault",
			Name:      "orders_forwarded",
			Help:      "number of order intents forwarded to the matcher",
		}),
		cancelsForwarded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vault",
			Name:      "cancels_forwarded",
			Help:      "number of order cancels forwarded to the matcher",
		}),
		reentriesBlocked: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vault",
			Name:      "reentries_blocked",
			Help:      "number of reentrant calls rejected",
		}),
		baseReserve: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "vault",
			Name:      "base_reserve",
			Help:      "tracked base asset reserve",
		}),
		quoteReserve: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "vault",
			Name:      "quote_reserve",
			Help:      "tracked quote asset reserve",
		}),
		shareSupply: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "vault",
			Name:      "share_supply",
			Help:      "outstanding share token supply",
		}),
		depositProcess:  depositProcess,
		withdrawProcess: withdrawProcess,
	}
	errs := wrappers.Errs{}
	errs.Add(
		r.Register(m.deposits),
		r.Register(m.withdraws),
		r.Register(m.nativeDeposits),
		r.Register(m.nativeWithdraws),
		r.Register(m.nativeReceipts),
		r.Register(m.reserveSyncs),
		r.Register(m.ordersForwarded),
		r.Register(m.cancelsForwarded),
		r.Register(m.reentriesBlocked),
		r.Register(m.baseReserve),
		r.Register(m.quoteReserve),
		r.Register(m.shareSupply),
	)
	return m, errs.Err
}
