package market

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iw2rmb/trueke/table"
)

func TestDefault_ResolvesReferences(t *testing.T) {
	c := Default()

	require.Len(t, c.Users, 6)
	require.Len(t, c.Items, 8)
	require.Len(t, c.Exchanges, 5)
	require.Len(t, c.Auctions, 3)
	require.Len(t, c.Conversations, 3)
	require.Len(t, c.Notifications, 5)
	require.Len(t, c.Reports, 7)
	require.Len(t, c.Categories, 10)
	require.Equal(t, 47, c.Stats.CompletedTrades)

	require.Equal(t, "u1", c.Current.ID)
	admin, ok := c.User("admin1")
	require.True(t, ok)
	require.Equal(t, RoleAdmin, admin.Role)
	require.Equal(t, RoleUser, c.Users[0].Role)

	camera, ok := c.Item("i1")
	require.True(t, ok)
	require.Same(t, c.Users[4], camera.Owner)
	require.Equal(t, "Canon", camera.Metadata["Brand"])
	require.Equal(t, time.Date(2025, 12, 10, 0, 0, 0, 0, time.UTC), camera.Created)

	group := c.Exchanges[2]
	require.Equal(t, ExchangeGroup, group.Type)
	require.Len(t, group.Participants, 3)
	require.Same(t, camera, group.Requested[0])

	a1 := c.Auctions[0]
	require.Same(t, camera, a1.Item)
	require.Len(t, a1.Bids, 3)
	require.Equal(t, "i3", a1.Bids[2].Item.ID)
	top, ok := a1.TopBid()
	require.True(t, ok)
	require.Equal(t, 150.0, top)
	_, ok = c.Auctions[2].TopBid()
	require.False(t, ok)

	r1 := c.Reports[0]
	require.Same(t, c.Exchanges[1], r1.Exchange)
	require.Equal(t, "i3", r1.Item.ID)

	c1 := c.Conversations[0]
	require.Same(t, c.Current, c1.Participants[0])
	require.Same(t, c.Users[1], c1.Other(c.Current))
	require.Len(t, c1.Messages, 5)
	last, ok := c1.Last()
	require.True(t, ok)
	require.Equal(t, "m5", last.ID)
	require.Same(t, c.Users[1], last.Sender)
	require.True(t, c.Conversations[1].Messages[2].Offer)
}

func TestDefault_ReturnsIndependentCopies(t *testing.T) {
	a, b := Default(), Default()
	a.Items[0].Title = "changed"
	require.NotEqual(t, a.Items[0].Title, b.Items[0].Title)
}

func TestLoad_RejectsBadReferences(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{
			name: "unknown owner",
			doc:  "users: [{id: u1}]\nitems: [{id: i1, owner: u9}]\n",
			want: ErrDanglingRef,
		},
		{
			name: "duplicate user",
			doc:  "users: [{id: u1}, {id: u1}]\n",
			want: ErrDuplicateID,
		},
		{
			name: "forward exchange reference",
			doc:  "users: [{id: u1}]\nreports: [{id: r1, reporter: u1, reported: u1, status: pending, exchange: e1}]\n",
			want: ErrDanglingRef,
		},
		{
			name: "unknown conversation participant",
			doc:  "users: [{id: u1}]\nconversations: [{id: c1, participants: [u1, u2]}]\n",
			want: ErrDanglingRef,
		},
		{
			name: "sender outside conversation",
			doc:  "users: [{id: u1}, {id: u2}, {id: u3}]\nconversations: [{id: c1, participants: [u1, u2], messages: [{id: m1, sender: u3}]}]\n",
			want: ErrDanglingRef,
		},
		{
			name: "duplicate conversation",
			doc:  "users: [{id: u1}, {id: u2}]\nconversations: [{id: c1, participants: [u1, u2]}, {id: c1, participants: [u1, u2]}]\n",
			want: ErrDuplicateID,
		},
		{
			name: "bad current user",
			doc:  "current_user: u2\nusers: [{id: u1}]\n",
			want: ErrDanglingRef,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.doc))
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoad_RejectsUnknownKeys(t *testing.T) {
	_, err := Load(strings.NewReader("users: [{id: u1, nickname: x}]\n"))
	require.Error(t, err)
}

func TestLoad_ConversationShape(t *testing.T) {
	_, err := Load(strings.NewReader("users: [{id: u1}]\nconversations: [{id: c1, participants: [u1]}]\n"))
	require.ErrorContains(t, err, "at least 2 participants")

	doc := `users: [{id: u1}, {id: u2}]
conversations:
  - id: c1
    participants: [u1, u2]
    messages:
      - {id: m1, sender: u1, sent: 2026-02-16T18:00:00Z}
      - {id: m2, sender: u2, sent: 2026-02-16T17:00:00Z}
`
	_, err = Load(strings.NewReader(doc))
	require.ErrorContains(t, err, "sent before the previous message")
}

func TestRecords_Sections(t *testing.T) {
	c := Default()
	for _, s := range c.Sections() {
		recs, err := c.Records(s)
		require.NoError(t, err, s)
		require.NotEmpty(t, recs, s)
	}

	_, err := c.Records("payments")
	require.True(t, errors.Is(err, ErrUnknownSection))
}

func TestRecords_Conversations(t *testing.T) {
	recs, err := Default().Records(SectionConversations)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	require.Equal(t,
		[]string{"id", "participants", "last_message", "updated", "messages", "unread"},
		recs[0].FieldNames())

	people := table.CellFor(recs[0], table.Column{Field: "participants"})
	require.Equal(t, table.CellStructured, people.Kind)
	require.Contains(t, people.Detail, "Carlos Rivera")

	last := table.CellFor(recs[0], table.Column{Field: "last_message"})
	require.Equal(t, table.CellStructured, last.Kind)
	require.Contains(t, last.Detail, `"body": "Sounds great! When can we meet to exchange?"`)
	require.Contains(t, last.Detail, `"from": "Carlos Rivera"`)

	ctl := table.New(recs, table.Options[table.Record]{EnableFiltering: true})
	ctl.SetFilter("group exchange")
	require.Equal(t, 1, ctl.FilteredCount())
	require.Equal(t, 1, ctl.Rows()[0].ID)
}

func TestRecords_CategoriesAndDashboard(t *testing.T) {
	c := Default()
	cats := c.CategoryRows()
	require.Equal(t, CategoryRow{Name: "All", Listings: len(c.Items)}, cats[0])
	require.Equal(t, CategoryRow{Name: "Electronics", Listings: 2}, cats[1])
	require.Equal(t, CategoryRow{Name: "Art", Listings: 0}, cats[len(cats)-1])

	recs, err := c.Records(SectionDashboard)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	rating, ok := recs[0].FieldValue("average_rating")
	require.True(t, ok)
	require.Equal(t, 4.8, rating)
}

func TestMarkRead(t *testing.T) {
	c := Default()
	require.NoError(t, c.MarkRead("c1"))
	require.Zero(t, c.Conversations[0].Unread)
	require.Equal(t, 1, c.Conversations[1].Unread)
	require.ErrorIs(t, c.MarkRead("c9"), ErrUnknownConversation)
}

func TestRecords_KeepRowColumnOrder(t *testing.T) {
	recs, err := Default().Records(SectionAuctions)
	require.NoError(t, err)
	require.Equal(t,
		[]string{"id", "item", "seller", "status", "start", "end", "bids", "top_bid"},
		recs[0].FieldNames())

	top, _ := recs[0].FieldValue("top_bid")
	require.Equal(t, 150.0, top)
	top, _ = recs[2].FieldValue("top_bid")
	require.Nil(t, top)
}

func TestRecords_DriveController(t *testing.T) {
	recs, err := Default().Records(SectionItems)
	require.NoError(t, err)

	ctl := table.New(recs, table.Options[table.Record]{EnableFiltering: true})
	ctl.SetFilter("electronics")
	require.Equal(t, 2, ctl.FilteredCount())

	meta := table.CellFor(ctl.Rows()[0].Record, table.Column{Field: "metadata"})
	require.Equal(t, table.CellStructured, meta.Kind)
	require.Contains(t, meta.Detail, `"Brand": "Canon"`)
}

func TestSetReportStatus(t *testing.T) {
	c := Default()
	at := time.Date(2026, 2, 22, 9, 0, 0, 0, time.UTC)

	require.NoError(t, c.SetReportStatus("r1", ReportResolved, "Admin User", at))
	r1 := c.Reports[0]
	require.Equal(t, ReportResolved, r1.Status)
	require.Equal(t, "Admin User", r1.ResolvedBy)
	require.Equal(t, at, r1.Resolved)

	require.NoError(t, c.SetReportStatus("r1", ReportReviewing, "Admin User", at))
	require.Empty(t, r1.ResolvedBy)
	require.True(t, r1.Resolved.IsZero())

	require.ErrorIs(t, c.SetReportStatus("r99", ReportPending, "", at), ErrUnknownReport)
	require.Error(t, c.SetReportStatus("r1", ReportStatus("archived"), "", at))
}

func TestDecodeRecords_PreservesKeyOrder(t *testing.T) {
	doc := `
- zeta: 1
  alpha: two
  meta: {b: 1, a: 2}
- alpha: three
  zeta: null
`
	recs, err := DecodeRecords(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, recs, 2)
	require.Equal(t, []string{"zeta", "alpha", "meta"}, recs[0].FieldNames())
	require.Equal(t, []string{"alpha", "zeta"}, recs[1].FieldNames())

	cols := table.InferColumns(recs[0])
	require.Equal(t, "zeta", cols[0].Field)

	v, ok := recs[1].FieldValue("zeta")
	require.True(t, ok)
	require.Nil(t, v)
}

func TestDecodeRecords_Errors(t *testing.T) {
	recs, err := DecodeRecords(strings.NewReader(""))
	require.NoError(t, err)
	require.Empty(t, recs)

	_, err = DecodeRecords(strings.NewReader("a: 1\n"))
	require.ErrorContains(t, err, "sequence")

	_, err = DecodeRecords(strings.NewReader("- 1\n- 2\n"))
	require.ErrorContains(t, err, "mapping")
}
