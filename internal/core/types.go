// Package core holds the data types shared by every component of the
// matching engine: the command wire format, the order record, and the
// event schemas emitted through the publisher hook.
package core

// Side identifies which side of the book an order or trade belongs to.
type Side uint8

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	if s == Buy {
		return "BUY"
	}
	return "SELL"
}

// OrderType selects the execution semantics of a NEW command.
type OrderType uint8

const (
	Limit OrderType = iota
	IOC             // Immediate-Or-Cancel
	FOK             // Fill-Or-Kill
)

func (t OrderType) String() string {
	switch t {
	case Limit:
		return "LIMIT"
	case IOC:
		return "IOC"
	case FOK:
		return "FOK"
	default:
		return "UNKNOWN"
	}
}

// Status is the lifecycle state of an Order. PENDING is the initial state
// on acquire; FILLED, CANCELLED and REJECTED are terminal.
type Status uint8

const (
	Pending Status = iota
	PartialFill
	Filled
	Cancelled
	Rejected
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "PENDING"
	case PartialFill:
		return "PARTIAL_FILL"
	case Filled:
		return "FILLED"
	case Cancelled:
		return "CANCELLED"
	case Rejected:
		return "REJECTED"
	default:
		return "UNKNOWN"
	}
}

// RejectReason records why the matcher rejected a NEW command. Zero value
// means "not rejected".
type RejectReason uint8

const (
	NotRejected RejectReason = iota
	PoolExhausted
	InvalidPrice
	InvalidQuantity
	FOKInsufficientLiquidity
)

func (r RejectReason) String() string {
	switch r {
	case PoolExhausted:
		return "POOL_EXHAUSTED"
	case InvalidPrice:
		return "INVALID_PRICE"
	case InvalidQuantity:
		return "INVALID_QUANTITY"
	case FOKInsufficientLiquidity:
		return "FOK_INSUFFICIENT_LIQUIDITY"
	default:
		return "NOT_REJECTED"
	}
}

// CommandType discriminates the two producer-visible commands plus the
// cooperative shutdown sentinel.
type CommandType uint8

const (
	New CommandType = iota
	Cancel
	Shutdown
)

// Command is the fixed-size record the producer enqueues and the matcher
// dequeues. It is trivially copyable: no owned buffers, all scalar fields.
type Command struct {
	Type              CommandType
	OrderID           uint64
	Side              Side
	OrderType         OrderType
	Price             int64
	Quantity          uint64
	ProducerTimestamp int64 // nanoseconds, as read by the producer
}

// Order is a single resting or in-flight order. The Prev/Next links are
// intrusive: they are valid only while the order is linked into a
// PriceLevel, and are mutated by the book package's level operations and
// by the arena's free list. Exactly one thread — the matcher — ever touches an Order
// after it leaves the arena.
type Order struct {
	ID               uint64
	Side             Side
	Type             OrderType
	Price            int64
	Remaining        uint64
	OriginalQuantity uint64
	Status           Status
	Timestamp        int64

	// Next doubles as the free-list link while the order sits on the
	// arena's free list (Prev is nil there); both are the intrusive
	// PriceLevel links once acquired — the two uses are disjoint in
	// time: an order is never simultaneously free and linked into a level.
	Prev *Order
	Next *Order
}

// Trade is emitted through the publisher hook's OnTrade for every fill.
// Price is always the resting order's price (maker-priced execution).
type Trade struct {
	AggressorID   uint64
	RestingID     uint64
	AggressorSide Side
	Price         int64
	Quantity      uint64
	Timestamp     int64
}

// LevelUpdate is emitted through OnLevelUpdate whenever a price level's
// aggregate quantity or order count changes.
type LevelUpdate struct {
	Side             Side
	Price            int64
	AggregateQty     uint64
	OrderCount       uint32
	Timestamp        int64
}

// LevelEntry is one row of a Snapshot.
type LevelEntry struct {
	Price      int64
	Aggregate  uint64
	OrderCount uint32
}

// Snapshot is the on-demand top-of-book view returned by Matcher.Snapshot
// and handed to a publisher's OnSnapshot. It is never produced from the
// matcher's hot loop.
type Snapshot struct {
	Bids      []LevelEntry // descending by price
	Asks      []LevelEntry // ascending by price
	Timestamp int64
}
