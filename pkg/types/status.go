package types

// OrderPhase is the lifecycle state of a submitted order as reported by the
// upstream swap network.
type OrderPhase string

const (
	PhasePending  OrderPhase = "pending"
	PhaseExecuted OrderPhase = "executed"
	PhaseExpired  OrderPhase = "expired"
	PhaseRefunded OrderPhase = "refunded"
)

// Terminal reports whether no further state transitions can occur. Any
// phase outside the terminal set drives continued polling.
func (p OrderPhase) Terminal() bool {
	switch p {
	case PhaseExecuted, PhaseExpired, PhaseRefunded:
		return true
	default:
		return false
	}
}

// Fill is one escrow fill of an order.
type Fill struct {
	TxHash                   string `json:"txHash"`
	FilledMakerAmount        string `json:"filledMakerAmount"`
	FilledAuctionTakerAmount string `json:"filledAuctionTakerAmount"`
	Status                   string `json:"status"`
}

// OrderStatus is the upstream view of a submitted order.
type OrderStatus struct {
	Status               OrderPhase `json:"status"`
	OrderHash            string     `json:"orderHash"`
	SrcChainID           int64      `json:"srcChainId"`
	DstChainID           int64      `json:"dstChainId"`
	Validation           string     `json:"validation,omitempty"`
	RemainingMakerAmount string     `json:"remainingMakerAmount,omitempty"`
	Deadline             int64      `json:"deadline,omitempty"`
	CreatedAt            int64      `json:"createdAt,omitempty"`
	Cancelable           bool       `json:"cancelable,omitempty"`
	Fills                []Fill     `json:"fills"`
}
