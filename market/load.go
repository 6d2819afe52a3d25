package market

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"slices"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed fixtures.yaml
var fixtures []byte

// Catalog is a resolved fixture set. Slices keep file order.
type Catalog struct {
	Current       *User
	Users         []*User
	Items         []*Item
	Exchanges     []*Exchange
	Auctions      []*Auction
	Conversations []*Conversation
	Notifications []*Notification
	Reports       []*Report
	// Categories are the listing categories offered as filters, "All" first.
	Categories []string
	Stats      Stats

	users     map[string]*User
	items     map[string]*Item
	exchanges map[string]*Exchange
}

// Default returns a fresh copy of the embedded catalog.
func Default() *Catalog {
	c, err := Load(bytes.NewReader(fixtures))
	if err != nil {
		panic(fmt.Sprintf("market: embedded fixtures: %v", err))
	}
	return c
}

// Load decodes a fixture document and resolves its id references.
func Load(r io.Reader) (*Catalog, error) {
	var doc fixtureDoc
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode fixtures: %w", err)
	}
	c := &Catalog{
		users:     make(map[string]*User, len(doc.Users)),
		items:     make(map[string]*Item, len(doc.Items)),
		exchanges: make(map[string]*Exchange, len(doc.Exchanges)),
	}
	if err := c.resolve(&doc); err != nil {
		return nil, err
	}
	return c, nil
}

// User looks up a user by id.
func (c *Catalog) User(id string) (*User, bool) {
	u, ok := c.users[id]
	return u, ok
}

// Item looks up an item by id.
func (c *Catalog) Item(id string) (*Item, bool) {
	it, ok := c.items[id]
	return it, ok
}

type fixtureDoc struct {
	CurrentUser   string                `yaml:"current_user"`
	Users         []fixtureUser         `yaml:"users"`
	Items         []fixtureItem         `yaml:"items"`
	Exchanges     []fixtureExchange     `yaml:"exchanges"`
	Auctions      []fixtureAuction      `yaml:"auctions"`
	Conversations []fixtureConversation `yaml:"conversations"`
	Notifications []Notification        `yaml:"notifications"`
	Reports       []fixtureReport       `yaml:"reports"`
	Categories    []string              `yaml:"categories"`
	Stats         Stats                 `yaml:"dashboard_stats"`
}

type fixtureUser struct {
	ID          string    `yaml:"id"`
	Name        string    `yaml:"name"`
	Avatar      string    `yaml:"avatar"`
	Location    string    `yaml:"location"`
	Rating      float64   `yaml:"rating"`
	Bio         string    `yaml:"bio"`
	Joined      time.Time `yaml:"joined"`
	TotalTrades int       `yaml:"total_trades"`
	Role        Role      `yaml:"role"`
}

type fixtureItem struct {
	ID          string            `yaml:"id"`
	Title       string            `yaml:"title"`
	Description string            `yaml:"description"`
	Condition   Condition         `yaml:"condition"`
	Category    string            `yaml:"category"`
	Type        ItemType          `yaml:"type"`
	State       ItemState         `yaml:"state"`
	Images      []string          `yaml:"images"`
	Owner       string            `yaml:"owner"`
	Created     time.Time         `yaml:"created"`
	Metadata    map[string]string `yaml:"metadata"`
}

type fixtureExchange struct {
	ID           string       `yaml:"id"`
	Type         ExchangeType `yaml:"type"`
	Status       OfferState   `yaml:"status"`
	Initiator    string       `yaml:"initiator"`
	Participants []string     `yaml:"participants"`
	Offered      []string     `yaml:"offered"`
	Requested    []string     `yaml:"requested"`
	Created      time.Time    `yaml:"created"`
	Message      string       `yaml:"message"`
}

type fixtureBid struct {
	ID      string    `yaml:"id"`
	Bidder  string    `yaml:"bidder"`
	Type    BidType   `yaml:"type"`
	Amount  float64   `yaml:"amount"`
	Item    string    `yaml:"item"`
	Created time.Time `yaml:"created"`
}

type fixtureAuction struct {
	ID     string        `yaml:"id"`
	Item   string        `yaml:"item"`
	Seller string        `yaml:"seller"`
	Start  time.Time     `yaml:"start"`
	End    time.Time     `yaml:"end"`
	Status AuctionStatus `yaml:"status"`
	Bids   []fixtureBid  `yaml:"bids"`
}

type fixtureMessage struct {
	ID     string    `yaml:"id"`
	Sender string    `yaml:"sender"`
	Body   string    `yaml:"body"`
	Sent   time.Time `yaml:"sent"`
	Offer  bool      `yaml:"offer"`
}

type fixtureConversation struct {
	ID           string           `yaml:"id"`
	Participants []string         `yaml:"participants"`
	Unread       int              `yaml:"unread"`
	Messages     []fixtureMessage `yaml:"messages"`
}

type fixtureReport struct {
	ID          string       `yaml:"id"`
	Reporter    string       `yaml:"reporter"`
	Reported    string       `yaml:"reported"`
	Reason      string       `yaml:"reason"`
	ReasonText  string       `yaml:"reason_text"`
	Description string       `yaml:"description"`
	Status      ReportStatus `yaml:"status"`
	Date        time.Time    `yaml:"date"`
	Item        string       `yaml:"item"`
	Exchange    string       `yaml:"exchange"`
	Evidence    []string     `yaml:"evidence"`
	AdminNotes  string       `yaml:"admin_notes"`
	ResolvedBy  string       `yaml:"resolved_by"`
	Resolved    time.Time    `yaml:"resolved"`
}

// resolve builds the typed catalog in dependency order: users, items,
// exchanges, then the records that reference them.
func (c *Catalog) resolve(doc *fixtureDoc) error {
	for _, fu := range doc.Users {
		if _, dup := c.users[fu.ID]; dup || fu.ID == "" {
			return fmt.Errorf("user %q: %w", fu.ID, ErrDuplicateID)
		}
		role := fu.Role
		if role == "" {
			role = RoleUser
		}
		u := &User{
			ID: fu.ID, Name: fu.Name, Avatar: fu.Avatar, Location: fu.Location,
			Rating: fu.Rating, Bio: fu.Bio, Joined: fu.Joined, TotalTrades: fu.TotalTrades, Role: role,
		}
		c.users[u.ID] = u
		c.Users = append(c.Users, u)
	}
	if doc.CurrentUser != "" {
		u, err := c.userRef("current_user", doc.CurrentUser)
		if err != nil {
			return err
		}
		c.Current = u
	}

	for _, fi := range doc.Items {
		if _, dup := c.items[fi.ID]; dup || fi.ID == "" {
			return fmt.Errorf("item %q: %w", fi.ID, ErrDuplicateID)
		}
		owner, err := c.userRef("item "+fi.ID, fi.Owner)
		if err != nil {
			return err
		}
		it := &Item{
			ID: fi.ID, Title: fi.Title, Description: fi.Description, Condition: fi.Condition,
			Category: fi.Category, Type: fi.Type, State: fi.State, Images: fi.Images,
			Owner: owner, Created: fi.Created, Metadata: fi.Metadata,
		}
		c.items[it.ID] = it
		c.Items = append(c.Items, it)
	}

	for _, fe := range doc.Exchanges {
		if _, dup := c.exchanges[fe.ID]; dup || fe.ID == "" {
			return fmt.Errorf("exchange %q: %w", fe.ID, ErrDuplicateID)
		}
		where := "exchange " + fe.ID
		ex := &Exchange{ID: fe.ID, Type: fe.Type, Status: fe.Status, Created: fe.Created, Message: fe.Message}
		var err error
		if ex.Initiator, err = c.userRef(where, fe.Initiator); err != nil {
			return err
		}
		if ex.Participants, err = c.userRefs(where, fe.Participants); err != nil {
			return err
		}
		if ex.Offered, err = c.itemRefs(where, fe.Offered); err != nil {
			return err
		}
		if ex.Requested, err = c.itemRefs(where, fe.Requested); err != nil {
			return err
		}
		c.exchanges[ex.ID] = ex
		c.Exchanges = append(c.Exchanges, ex)
	}

	for _, fa := range doc.Auctions {
		where := "auction " + fa.ID
		a := &Auction{ID: fa.ID, Start: fa.Start, End: fa.End, Status: fa.Status}
		var err error
		if a.Item, err = c.itemRef(where, fa.Item); err != nil {
			return err
		}
		if a.Seller, err = c.userRef(where, fa.Seller); err != nil {
			return err
		}
		for _, fb := range fa.Bids {
			b := Bid{ID: fb.ID, Type: fb.Type, Amount: fb.Amount, Created: fb.Created}
			if b.Bidder, err = c.userRef(where+" bid "+fb.ID, fb.Bidder); err != nil {
				return err
			}
			if fb.Item != "" {
				if b.Item, err = c.itemRef(where+" bid "+fb.ID, fb.Item); err != nil {
					return err
				}
			}
			a.Bids = append(a.Bids, b)
		}
		c.Auctions = append(c.Auctions, a)
	}

	if err := c.resolveConversations(doc.Conversations); err != nil {
		return err
	}

	for i := range doc.Notifications {
		n := doc.Notifications[i]
		c.Notifications = append(c.Notifications, &n)
	}

	for _, fr := range doc.Reports {
		where := "report " + fr.ID
		if !fr.Status.Valid() {
			return fmt.Errorf("%s: invalid status %q", where, fr.Status)
		}
		r := &Report{
			ID: fr.ID, Reason: fr.Reason, ReasonText: fr.ReasonText, Description: fr.Description,
			Status: fr.Status, Date: fr.Date, Evidence: fr.Evidence, AdminNotes: fr.AdminNotes,
			ResolvedBy: fr.ResolvedBy, Resolved: fr.Resolved,
		}
		var err error
		if r.Reporter, err = c.userRef(where, fr.Reporter); err != nil {
			return err
		}
		if r.Reported, err = c.userRef(where, fr.Reported); err != nil {
			return err
		}
		if fr.Item != "" {
			if r.Item, err = c.itemRef(where, fr.Item); err != nil {
				return err
			}
		}
		if fr.Exchange != "" {
			ex, ok := c.exchanges[fr.Exchange]
			if !ok {
				return fmt.Errorf("%s: exchange %q: %w", where, fr.Exchange, ErrDanglingRef)
			}
			r.Exchange = ex
		}
		c.Reports = append(c.Reports, r)
	}

	c.Categories = doc.Categories
	c.Stats = doc.Stats
	return nil
}

// resolveConversations requires every sender to be one of the conversation's
// participants and messages to be in send order.
func (c *Catalog) resolveConversations(convs []fixtureConversation) error {
	seen := make(map[string]bool, len(convs))
	for _, fc := range convs {
		where := "conversation " + fc.ID
		if seen[fc.ID] || fc.ID == "" {
			return fmt.Errorf("%s: %w", where, ErrDuplicateID)
		}
		seen[fc.ID] = true
		if len(fc.Participants) < 2 {
			return fmt.Errorf("%s: needs at least 2 participants, got %d", where, len(fc.Participants))
		}
		participants, err := c.userRefs(where, fc.Participants)
		if err != nil {
			return err
		}
		conv := &Conversation{ID: fc.ID, Participants: participants, Unread: fc.Unread}
		for _, fm := range fc.Messages {
			sender, err := c.userRef(where+" message "+fm.ID, fm.Sender)
			if err != nil {
				return err
			}
			if !slices.Contains(participants, sender) {
				return fmt.Errorf("%s message %s: sender %q is not a participant: %w", where, fm.ID, fm.Sender, ErrDanglingRef)
			}
			if n := len(conv.Messages); n > 0 && fm.Sent.Before(conv.Messages[n-1].Sent) {
				return fmt.Errorf("%s message %s: sent before the previous message", where, fm.ID)
			}
			conv.Messages = append(conv.Messages, Message{ID: fm.ID, Sender: sender, Body: fm.Body, Sent: fm.Sent, Offer: fm.Offer})
		}
		c.Conversations = append(c.Conversations, conv)
	}
	return nil
}

func (c *Catalog) userRef(where, id string) (*User, error) {
	u, ok := c.users[id]
	if !ok {
		return nil, fmt.Errorf("%s: user %q: %w", where, id, ErrDanglingRef)
	}
	return u, nil
}

func (c *Catalog) userRefs(where string, ids []string) ([]*User, error) {
	out := make([]*User, 0, len(ids))
	for _, id := range ids {
		u, err := c.userRef(where, id)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}

func (c *Catalog) itemRef(where, id string) (*Item, error) {
	it, ok := c.items[id]
	if !ok {
		return nil, fmt.Errorf("%s: item %q: %w", where, id, ErrDanglingRef)
	}
	return it, nil
}

func (c *Catalog) itemRefs(where string, ids []string) ([]*Item, error) {
	out := make([]*Item, 0, len(ids))
	for _, id := range ids {
		it, err := c.itemRef(where, id)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, nil
}
