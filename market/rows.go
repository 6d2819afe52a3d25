package market

import (
	"fmt"
	"strings"
	"time"

	"github.com/iw2rmb/trueke/table"
)

// Section names accepted by Records.
const (
	SectionUsers         = "users"
	SectionItems         = "items"
	SectionExchanges     = "exchanges"
	SectionAuctions      = "auctions"
	SectionConversations = "conversations"
	SectionNotifications = "notifications"
	SectionReports       = "reports"
	SectionCategories    = "categories"
	SectionDashboard     = "dashboard"
)

// Sections lists the section names in display order.
func (c *Catalog) Sections() []string {
	return []string{
		SectionUsers, SectionItems, SectionExchanges, SectionAuctions,
		SectionConversations, SectionNotifications, SectionReports,
		SectionCategories, SectionDashboard,
	}
}

type UserRow struct {
	ID       string    `table:"id"`
	Name     string    `table:"name"`
	Location string    `table:"location"`
	Rating   float64   `table:"rating"`
	Joined   time.Time `table:"joined"`
	Trades   int       `table:"trades"`
	Role     Role      `table:"role"`
}

type ItemRow struct {
	ID        string            `table:"id"`
	Title     string            `table:"title"`
	Category  string            `table:"category"`
	Condition Condition         `table:"condition"`
	Type      ItemType          `table:"type"`
	State     ItemState         `table:"state"`
	Owner     string            `table:"owner"`
	Created   time.Time         `table:"created"`
	Metadata  map[string]string `table:"metadata"`
}

type ExchangeRow struct {
	ID           string       `table:"id"`
	Type         ExchangeType `table:"type"`
	Status       OfferState   `table:"status"`
	Initiator    string       `table:"initiator"`
	Participants []string     `table:"participants"`
	Offered      []string     `table:"offered"`
	Requested    []string     `table:"requested"`
	Created      time.Time    `table:"created"`
	Message      string       `table:"message"`
}

type AuctionRow struct {
	ID     string        `table:"id"`
	Item   string        `table:"item"`
	Seller string        `table:"seller"`
	Status AuctionStatus `table:"status"`
	Start  time.Time     `table:"start"`
	End    time.Time     `table:"end"`
	Bids   int           `table:"bids"`
	// TopBid is nil when the auction has no monetary bid.
	TopBid any `table:"top_bid"`
}

// MessageSummary is the structured last-message cell of a ConversationRow.
type MessageSummary struct {
	From  string    `json:"from"`
	Body  string    `json:"body"`
	Sent  time.Time `json:"sent"`
	Offer bool      `json:"offer,omitempty"`
}

type ConversationRow struct {
	ID           string   `table:"id"`
	Participants []string `table:"participants"`
	// Last is a MessageSummary, or nil for an empty conversation.
	Last     any       `table:"last_message"`
	Updated  time.Time `table:"updated"`
	Messages int       `table:"messages"`
	Unread   int       `table:"unread"`
}

type CategoryRow struct {
	Name     string `table:"name"`
	Listings int    `table:"listings"`
}

type ReportRow struct {
	ID       string       `table:"id"`
	Reporter string       `table:"reporter"`
	Reported string       `table:"reported"`
	Reason   string       `table:"reason"`
	Status   ReportStatus `table:"status"`
	Date     time.Time    `table:"date"`
	Related  any          `table:"related"`
	Evidence []string     `table:"evidence"`
	Notes    string       `table:"notes"`
}

func (c *Catalog) UserRows() []UserRow {
	out := make([]UserRow, len(c.Users))
	for i, u := range c.Users {
		out[i] = UserRow{
			ID: u.ID, Name: u.Name, Location: u.Location, Rating: u.Rating,
			Joined: u.Joined, Trades: u.TotalTrades, Role: u.Role,
		}
	}
	return out
}

func (c *Catalog) ItemRows() []ItemRow {
	out := make([]ItemRow, len(c.Items))
	for i, it := range c.Items {
		out[i] = ItemRow{
			ID: it.ID, Title: it.Title, Category: it.Category, Condition: it.Condition,
			Type: it.Type, State: it.State, Owner: it.Owner.Name, Created: it.Created,
			Metadata: it.Metadata,
		}
	}
	return out
}

func (c *Catalog) ExchangeRows() []ExchangeRow {
	out := make([]ExchangeRow, len(c.Exchanges))
	for i, ex := range c.Exchanges {
		out[i] = ExchangeRow{
			ID: ex.ID, Type: ex.Type, Status: ex.Status, Initiator: ex.Initiator.Name,
			Participants: userNames(ex.Participants), Offered: itemTitles(ex.Offered),
			Requested: itemTitles(ex.Requested), Created: ex.Created, Message: ex.Message,
		}
	}
	return out
}

func (c *Catalog) AuctionRows() []AuctionRow {
	out := make([]AuctionRow, len(c.Auctions))
	for i, a := range c.Auctions {
		row := AuctionRow{
			ID: a.ID, Item: a.Item.Title, Seller: a.Seller.Name, Status: a.Status,
			Start: a.Start, End: a.End, Bids: len(a.Bids),
		}
		if top, ok := a.TopBid(); ok {
			row.TopBid = top
		}
		out[i] = row
	}
	return out
}

func (c *Catalog) ConversationRows() []ConversationRow {
	out := make([]ConversationRow, len(c.Conversations))
	for i, conv := range c.Conversations {
		row := ConversationRow{
			ID: conv.ID, Participants: userNames(conv.Participants),
			Messages: len(conv.Messages), Unread: conv.Unread,
		}
		if m, ok := conv.Last(); ok {
			row.Last = MessageSummary{From: m.Sender.Name, Body: m.Body, Sent: m.Sent, Offer: m.Offer}
			row.Updated = m.Sent
		}
		out[i] = row
	}
	return out
}

// CategoryRows counts items per category. The "All" category counts every
// item.
func (c *Catalog) CategoryRows() []CategoryRow {
	out := make([]CategoryRow, len(c.Categories))
	for i, name := range c.Categories {
		row := CategoryRow{Name: name}
		for _, it := range c.Items {
			if name == "All" || strings.EqualFold(it.Category, name) {
				row.Listings++
			}
		}
		out[i] = row
	}
	return out
}

func (c *Catalog) NotificationRows() []Notification {
	out := make([]Notification, len(c.Notifications))
	for i, n := range c.Notifications {
		out[i] = *n
	}
	return out
}

func (c *Catalog) ReportRows() []ReportRow {
	out := make([]ReportRow, len(c.Reports))
	for i, r := range c.Reports {
		row := ReportRow{
			ID: r.ID, Reporter: r.Reporter.Name, Reported: r.Reported.Name,
			Reason: r.ReasonText, Status: r.Status, Date: r.Date,
			Evidence: r.Evidence, Notes: r.AdminNotes,
		}
		related := map[string]string{}
		if r.Item != nil {
			related["item"] = r.Item.Title
		}
		if r.Exchange != nil {
			related["exchange"] = r.Exchange.ID
		}
		if len(related) > 0 {
			row.Related = related
		}
		out[i] = row
	}
	return out
}

// Records projects a section into ordered records, one field per column of
// the section's row type.
func (c *Catalog) Records(section string) ([]table.Record, error) {
	switch section {
	case SectionUsers:
		return toRecords(c.UserRows()), nil
	case SectionItems:
		return toRecords(c.ItemRows()), nil
	case SectionExchanges:
		return toRecords(c.ExchangeRows()), nil
	case SectionAuctions:
		return toRecords(c.AuctionRows()), nil
	case SectionConversations:
		return toRecords(c.ConversationRows()), nil
	case SectionNotifications:
		return toRecords(c.NotificationRows()), nil
	case SectionCategories:
		return toRecords(c.CategoryRows()), nil
	case SectionDashboard:
		return toRecords([]Stats{c.Stats}), nil
	case SectionReports:
		return toRecords(c.ReportRows()), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSection, section)
	}
}

// SetReportStatus moves a report to status. Resolving or dismissing records
// the moderator and date; reopening clears them.
func (c *Catalog) SetReportStatus(id string, status ReportStatus, by string, at time.Time) error {
	if !status.Valid() {
		return fmt.Errorf("report %q: invalid status %q", id, status)
	}
	for _, r := range c.Reports {
		if r.ID != id {
			continue
		}
		r.Status = status
		switch status {
		case ReportResolved, ReportDismissed:
			r.ResolvedBy, r.Resolved = by, at
		default:
			r.ResolvedBy, r.Resolved = "", time.Time{}
		}
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownReport, id)
}

// MarkRead clears the unread counter of a conversation.
func (c *Catalog) MarkRead(id string) error {
	for _, conv := range c.Conversations {
		if conv.ID == id {
			conv.Unread = 0
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownConversation, id)
}

func toRecords[T any](rows []T) []table.Record {
	out := make([]table.Record, len(rows))
	for i, row := range rows {
		names := table.FieldNames(row)
		rec := make(table.Record, 0, len(names))
		for _, name := range names {
			v, _ := table.FieldValue(row, name)
			rec = append(rec, table.Field{Name: name, Value: v})
		}
		out[i] = rec
	}
	return out
}

func userNames(us []*User) []string {
	out := make([]string, len(us))
	for i, u := range us {
		out[i] = u.Name
	}
	return out
}

func itemTitles(items []*Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Title
	}
	return out
}
