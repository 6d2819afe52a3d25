// Package market holds the barter marketplace fixture catalog: users, items,
// exchanges, auctions, conversations, notifications and moderation reports,
// plus the listing categories and dashboard counters.
//
// The catalog is loaded from YAML in which records reference each other by
// id. Load resolves every reference and rejects dangling or duplicate ids.
package market

import (
	"errors"
	"time"
)

var (
	// ErrUnknownSection is returned for a section name the catalog does not
	// know.
	ErrUnknownSection = errors.New("unknown section")
	// ErrDanglingRef is wrapped by Load when a record references an id that
	// was not defined earlier in the document.
	ErrDanglingRef = errors.New("dangling reference")
	// ErrDuplicateID is wrapped by Load for repeated or empty ids.
	ErrDuplicateID = errors.New("duplicate or empty id")
	// ErrUnknownReport is returned by SetReportStatus for a missing report id.
	ErrUnknownReport = errors.New("unknown report")
	// ErrUnknownConversation is returned by MarkRead for a missing
	// conversation id.
	ErrUnknownConversation = errors.New("unknown conversation")
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type Condition string

const (
	LikeNew Condition = "like-new"
	Good    Condition = "good"
	Fair    Condition = "fair"
	Worn    Condition = "worn"
	Bad     Condition = "bad"
)

type ItemType string

const (
	Physical ItemType = "physical"
	Digital  ItemType = "digital"
	Service  ItemType = "service"
)

type ItemState string

const (
	Draft     ItemState = "draft"
	Active    ItemState = "active"
	Contested ItemState = "contested"
	Archived  ItemState = "archived"
)

type OfferState string

const (
	OfferOpen      OfferState = "open"
	OfferAccepted  OfferState = "accepted"
	OfferRejected  OfferState = "rejected"
	OfferExpired   OfferState = "expired"
	OfferCancelled OfferState = "cancelled"
)

type ExchangeType string

const (
	ExchangeDirect  ExchangeType = "direct"
	ExchangeGroup   ExchangeType = "group"
	ExchangeAuction ExchangeType = "auction"
)

type AuctionStatus string

const (
	AuctionUpcoming  AuctionStatus = "upcoming"
	AuctionActive    AuctionStatus = "active"
	AuctionSelecting AuctionStatus = "selecting"
	AuctionClosed    AuctionStatus = "closed"
)

type BidType string

const (
	BidMonetary BidType = "monetary"
	BidItem     BidType = "item"
)

type NotificationType string

const (
	NotifyOffer   NotificationType = "offer"
	NotifyAuction NotificationType = "auction"
	NotifyMessage NotificationType = "message"
	NotifyMeeting NotificationType = "meeting"
)

type ReportStatus string

const (
	ReportPending   ReportStatus = "pending"
	ReportReviewing ReportStatus = "reviewing"
	ReportResolved  ReportStatus = "resolved"
	ReportDismissed ReportStatus = "dismissed"
)

// Valid reports whether s is one of the known report statuses.
func (s ReportStatus) Valid() bool {
	switch s {
	case ReportPending, ReportReviewing, ReportResolved, ReportDismissed:
		return true
	}
	return false
}

type User struct {
	ID          string
	Name        string
	Avatar      string
	Location    string
	Rating      float64
	Bio         string
	Joined      time.Time
	TotalTrades int
	Role        Role
}

type Item struct {
	ID          string
	Title       string
	Description string
	Condition   Condition
	Category    string
	Type        ItemType
	State       ItemState
	Images      []string
	Owner       *User
	Created     time.Time
	Metadata    map[string]string
}

type Exchange struct {
	ID           string
	Type         ExchangeType
	Status       OfferState
	Initiator    *User
	Participants []*User
	Offered      []*Item
	Requested    []*Item
	Created      time.Time
	Message      string
}

type Bid struct {
	ID     string
	Bidder *User
	Type   BidType
	// Amount is set for monetary bids, Item for item bids.
	Amount  float64
	Item    *Item
	Created time.Time
}

type Auction struct {
	ID     string
	Item   *Item
	Seller *User
	Start  time.Time
	End    time.Time
	Bids   []Bid
	Status AuctionStatus
}

// TopBid returns the highest monetary bid.
func (a *Auction) TopBid() (float64, bool) {
	var top float64
	found := false
	for _, b := range a.Bids {
		if b.Type == BidMonetary && (!found || b.Amount > top) {
			top, found = b.Amount, true
		}
	}
	return top, found
}

type Message struct {
	ID     string
	Sender *User
	Body   string
	Sent   time.Time
	// Offer marks a structured trade offer sent through the chat.
	Offer bool
}

// Conversation is a chat between participants. Messages are in send order.
type Conversation struct {
	ID           string
	Participants []*User
	Unread       int
	Messages     []Message
}

// Last returns the most recent message.
func (c *Conversation) Last() (Message, bool) {
	if len(c.Messages) == 0 {
		return Message{}, false
	}
	return c.Messages[len(c.Messages)-1], true
}

// Other returns the first participant that is not u.
func (c *Conversation) Other(u *User) *User {
	for _, p := range c.Participants {
		if p != u {
			return p
		}
	}
	return nil
}

// Stats are the counters shown on the user dashboard.
type Stats struct {
	ActiveListings  int     `yaml:"active_listings" table:"active_listings"`
	PendingOffers   int     `yaml:"pending_offers" table:"pending_offers"`
	CompletedTrades int     `yaml:"completed_trades" table:"completed_trades"`
	AverageRating   float64 `yaml:"average_rating" table:"average_rating"`
}

type Notification struct {
	ID          string           `yaml:"id" table:"id"`
	Type        NotificationType `yaml:"type" table:"type"`
	Title       string           `yaml:"title" table:"title"`
	Description string           `yaml:"description" table:"description"`
	Time        string           `yaml:"time" table:"time"`
	Read        bool             `yaml:"read" table:"read"`
}

type Report struct {
	ID          string
	Reporter    *User
	Reported    *User
	Reason      string
	ReasonText  string
	Description string
	Status      ReportStatus
	Date        time.Time
	Item        *Item
	Exchange    *Exchange
	Evidence    []string
	AdminNotes  string
	ResolvedBy  string
	Resolved    time.Time
}
