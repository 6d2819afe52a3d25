package table

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

type selectionRecorder struct {
	calls [][]string
}

func (r *selectionRecorder) onChange(sel []listing) {
	ids := make([]string, len(sel))
	for i, l := range sel {
		ids[i] = l.ID
	}
	r.calls = append(r.calls, ids)
}

func (r *selectionRecorder) last() []string {
	if len(r.calls) == 0 {
		return nil
	}
	return r.calls[len(r.calls)-1]
}

func TestSelection_ToggleOneRow(t *testing.T) {
	rec := &selectionRecorder{}
	c := New(sampleListings(), Options[listing]{EnableSelection: true, OnSelectionChange: rec.onChange})

	if !c.ToggleRow(1) {
		t.Fatalf("ToggleRow reported no change")
	}
	if len(rec.calls) != 1 {
		t.Fatalf("callback calls: got %d, want 1", len(rec.calls))
	}
	if diff := cmp.Diff([]string{"i2"}, rec.last()); diff != "" {
		t.Fatalf("selection (-want +got):\n%s", diff)
	}
}

func TestSelection_SelectAllOnSinglePage(t *testing.T) {
	rec := &selectionRecorder{}
	rows := sampleListings()[:3]
	c := New(rows, Options[listing]{EnableSelection: true, EnablePagination: true, OnSelectionChange: rec.onChange})

	if !c.ToggleAllVisible() {
		t.Fatalf("ToggleAllVisible reported no change")
	}
	if diff := cmp.Diff([]string{"i1", "i2", "i3"}, rec.last()); diff != "" {
		t.Fatalf("selection (-want +got):\n%s", diff)
	}
	if !c.AllVisibleSelected() {
		t.Fatalf("AllVisibleSelected false after selecting all")
	}

	c.ToggleAllVisible()
	if got := rec.last(); len(got) != 0 {
		t.Fatalf("selection after second toggle: got %v, want empty", got)
	}
	if len(rec.calls) != 2 {
		t.Fatalf("callback calls: got %d, want 2", len(rec.calls))
	}
}

func TestSelection_UncheckThenRecheckIsNetNoop(t *testing.T) {
	rec := &selectionRecorder{}
	c := New(sampleListings(), Options[listing]{EnableSelection: true, OnSelectionChange: rec.onChange})
	c.SetRowSelected(0, true)
	c.SetRowSelected(3, true)
	initial := c.SelectedIDs()
	rec.calls = nil

	c.ToggleRow(3)
	c.ToggleRow(3)

	if len(rec.calls) != 2 {
		t.Fatalf("callback calls: got %d, want 2", len(rec.calls))
	}
	if diff := cmp.Diff(initial, c.SelectedIDs()); diff != "" {
		t.Fatalf("final selection differs (-initial +final):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"i1", "i4"}, rec.last()); diff != "" {
		t.Fatalf("last callback (-want +got):\n%s", diff)
	}
}

func TestSelection_SelectAllScopedToCurrentPage(t *testing.T) {
	c := New(sampleListings(), Options[listing]{EnableSelection: true, EnablePagination: true, PageSize: 2})
	c.NextPage()
	c.ToggleAllVisible()

	if diff := cmp.Diff([]int{2, 3}, c.SelectedIDs()); diff != "" {
		t.Fatalf("selected ids (-want +got):\n%s", diff)
	}
}

func TestSelection_NoCallbackWithoutChange(t *testing.T) {
	rec := &selectionRecorder{}
	c := New(sampleListings(), Options[listing]{EnableSelection: true, OnSelectionChange: rec.onChange})
	c.SetRowSelected(0, false)
	c.SetRowSelected(99, true)
	c.ClearSelection()
	if len(rec.calls) != 0 {
		t.Fatalf("callback fired %d times without a change", len(rec.calls))
	}
}

func TestSelection_CallbackReportsFilteredRows(t *testing.T) {
	rec := &selectionRecorder{}
	c := New(sampleListings(), Options[listing]{EnableSelection: true, EnableFiltering: true, OnSelectionChange: rec.onChange})
	c.SetRowSelected(0, true)
	c.SetRowSelected(1, true)
	rec.calls = nil

	c.SetFilter("canon")
	if diff := cmp.Diff([][]string{{"i1"}}, rec.calls); diff != "" {
		t.Fatalf("callback calls (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{0, 1}, c.SelectedIDs()); diff != "" {
		t.Fatalf("hidden selection dropped (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{0}, c.FilteredSelectedIDs()); diff != "" {
		t.Fatalf("filtered selection (-want +got):\n%s", diff)
	}

	// Same reported rows: no callback.
	c.SetFilter("canon a")
	if len(rec.calls) != 1 {
		t.Fatalf("callback calls: got %d, want 1", len(rec.calls))
	}

	c.SetFilter("")
	if diff := cmp.Diff([]string{"i1", "i2"}, rec.last()); diff != "" {
		t.Fatalf("selection after clearing filter (-want +got):\n%s", diff)
	}
	if len(rec.calls) != 2 {
		t.Fatalf("callback calls: got %d, want 2", len(rec.calls))
	}
}

func TestSelection_DisabledIgnoresToggles(t *testing.T) {
	c := New(sampleListings(), Options[listing]{})
	if c.ToggleRow(0) || c.ToggleAllVisible() {
		t.Fatalf("selection changed while disabled")
	}
}

func TestSetRows_DropsStaleSelections(t *testing.T) {
	rec := &selectionRecorder{}
	c := New(sampleListings(), Options[listing]{EnableSelection: true, OnSelectionChange: rec.onChange})
	c.SetRowSelected(1, true)
	c.SetRowSelected(4, true)
	rec.calls = nil

	c.SetRows(sampleListings()[:3])

	if diff := cmp.Diff([]int{1}, c.SelectedIDs()); diff != "" {
		t.Fatalf("selected ids (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([][]string{{"i2"}}, rec.calls); diff != "" {
		t.Fatalf("callback calls (-want +got):\n%s", diff)
	}
}

func TestSetRows_ClampsPage(t *testing.T) {
	c := New(sampleListings(), Options[listing]{EnablePagination: true, PageSize: 2})
	c.SetPage(2)
	c.SetRows(sampleListings()[:2])
	if c.Page() != 0 {
		t.Fatalf("page after shrink: got %d, want 0", c.Page())
	}
}

func TestSetRows_FromEmptyInfersColumns(t *testing.T) {
	c := New([]listing(nil), Options[listing]{})
	if c.State() != StateNoData {
		t.Fatalf("state: got %v, want StateNoData", c.State())
	}
	c.SetRows(sampleListings())
	if got := len(c.Columns()); got != 6 {
		t.Fatalf("columns: got %d, want 6", got)
	}
}

func TestInvokeAction_DispatchesFullRecord(t *testing.T) {
	var got []string
	c := New(sampleListings(), Options[listing]{
		EnableRowActions: true,
		RowActions: []RowAction[listing]{
			{Label: "View", Handler: func(l listing) { got = append(got, "view:"+l.ID) }},
			{Label: "Archive", Handler: func(l listing) { got = append(got, "archive:"+l.Title) }},
		},
	})

	if !c.InvokeAction(2, 1) {
		t.Fatalf("InvokeAction reported no dispatch")
	}
	if c.InvokeAction(2, 5) || c.InvokeAction(-1, 0) {
		t.Fatalf("out-of-range dispatch succeeded")
	}
	if diff := cmp.Diff([]string{"archive:Keyboard"}, got); diff != "" {
		t.Fatalf("dispatches (-want +got):\n%s", diff)
	}
}

func TestInvokeAction_DisabledHasNoActions(t *testing.T) {
	c := New(sampleListings(), Options[listing]{
		RowActions: []RowAction[listing]{{Label: "View", Handler: func(listing) {}}},
	})
	if c.Actions() != nil {
		t.Fatalf("actions exposed while disabled")
	}
	if c.InvokeAction(0, 0) {
		t.Fatalf("dispatch succeeded while disabled")
	}
}
