package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iw2rmb/trueke/market"
	"github.com/iw2rmb/trueke/table"
	"github.com/iw2rmb/trueke/tableview"
)

type browseOptions struct {
	section   string
	data      string
	records   string
	pageSize  int
	paginate  bool
	infinite  bool
	selection bool
	filter    bool
	help      bool
	highlight bool
	watch     bool
}

func newBrowseCmd(root *rootOptions) *cobra.Command {
	opts := browseOptions{}
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse a marketplace section as an interactive table",
		Long: `Browse renders one marketplace section in a table with sorting,
filtering, selection, pagination or infinite scroll, and row actions.

Sections: users, items, exchanges, auctions, conversations, notifications,
reports, categories, dashboard.

--data loads a fixture catalog instead of the embedded one; --records loads
any YAML list of mappings and ignores --section.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.watch && opts.data == "" && opts.records == "" {
				return errors.New("--watch needs --data or --records")
			}
			s := &session{opts: opts, log: root.logger.Named("browse")}
			rows, err := s.load()
			if err != nil {
				return err
			}
			m := newBrowser(s, rows)
			if opts.watch {
				fw, err := watchFile(s.watchedPath(), s.log)
				if err != nil {
					return err
				}
				defer fw.Close()
				m.watcher = fw
			}
			defer m.table.Close()

			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
			return err
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.section, "section", "s", market.SectionItems, "marketplace section to show")
	f.StringVar(&opts.data, "data", "", "fixture catalog YAML file")
	f.StringVar(&opts.records, "records", "", "YAML list of mappings to show instead of a section")
	f.IntVar(&opts.pageSize, "page-size", table.DefaultPageSize, "rows per page or per infinite-scroll step")
	f.BoolVar(&opts.paginate, "paginate", false, "split rows into pages")
	f.BoolVar(&opts.infinite, "infinite", false, "reveal rows as the view scrolls (wins over --paginate)")
	f.BoolVar(&opts.selection, "select", true, "enable row selection")
	f.BoolVar(&opts.filter, "filter", true, "enable the filter box")
	f.BoolVar(&opts.help, "help-bar", true, "show key help under the table")
	f.BoolVar(&opts.highlight, "highlight", true, "color structured cell details")
	f.BoolVar(&opts.watch, "watch", false, "reload when the data file changes")
	return cmd
}

// session is the browse state shared with row action handlers.
type session struct {
	opts    browseOptions
	log     *zap.Logger
	catalog *market.Catalog

	status string
	// dirty asks the browser to reload rows after a handler mutated the
	// catalog.
	dirty bool
}

func (s *session) watchedPath() string {
	if s.opts.records != "" {
		return s.opts.records
	}
	return s.opts.data
}

func (s *session) load() ([]table.Record, error) {
	if s.opts.records != "" {
		f, err := os.Open(s.opts.records)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return market.DecodeRecords(f)
	}

	if s.catalog == nil || s.opts.data != "" && !s.dirty {
		c, err := loadCatalog(s.opts.data)
		if err != nil {
			return nil, err
		}
		s.catalog = c
	}
	return s.catalog.Records(s.opts.section)
}

func loadCatalog(path string) (*market.Catalog, error) {
	if path == "" {
		return market.Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	c, err := market.Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func (s *session) tableOptions() table.Options[table.Record] {
	return table.Options[table.Record]{
		EnableSelection:   s.opts.selection,
		OnSelectionChange: s.selectionChanged,
		EnablePagination:  s.opts.paginate,
		PageSize:          s.opts.pageSize,
		InfiniteScroll:    s.opts.infinite,
		EnableFiltering:   s.opts.filter,
		EnableRowActions:  true,
		RowActions:        s.rowActions(),
	}
}

func (s *session) selectionChanged(sel []table.Record) {
	s.status = fmt.Sprintf("%d selected", len(sel))
	s.log.Debug("selection changed", zap.Int("selected", len(sel)))
}

func (s *session) rowActions() []table.RowAction[table.Record] {
	inspect := table.RowAction[table.Record]{Label: "Inspect", Handler: s.inspect}
	switch {
	case s.opts.records != "":
	case s.opts.section == market.SectionConversations:
		return []table.RowAction[table.Record]{inspect, {Label: "Mark read", Handler: s.markRead}}
	case s.opts.section == market.SectionReports:
		return []table.RowAction[table.Record]{
			inspect,
			{Label: "Mark reviewing", Handler: s.moderate(market.ReportReviewing)},
			{Label: "Resolve", Handler: s.moderate(market.ReportResolved)},
			{Label: "Dismiss", Handler: s.moderate(market.ReportDismissed)},
		}
	}
	return []table.RowAction[table.Record]{inspect}
}

func (s *session) inspect(rec table.Record) {
	parts := make([]string, 0, len(rec))
	for _, f := range rec {
		if c := table.CellOf(f.Value); c.Kind == table.CellScalar || c.Kind == table.CellBool {
			parts = append(parts, f.Name+"="+c.Text)
		}
	}
	s.status = strings.Join(parts, "  ")
}

func (s *session) moderate(status market.ReportStatus) func(table.Record) {
	return func(rec table.Record) {
		v, _ := rec.FieldValue("id")
		id := table.ValueTextOr(v, "")
		if err := s.catalog.SetReportStatus(id, status, "Admin User", time.Now()); err != nil {
			s.status = err.Error()
			s.log.Warn("moderation failed", zap.String("report", id), zap.Error(err))
			return
		}
		s.status = fmt.Sprintf("report %s: %s", id, status)
		s.log.Info("report moderated", zap.String("report", id), zap.String("status", string(status)))
		s.dirty = true
	}
}

func (s *session) markRead(rec table.Record) {
	v, _ := rec.FieldValue("id")
	id := table.ValueTextOr(v, "")
	if err := s.catalog.MarkRead(id); err != nil {
		s.status = err.Error()
		s.log.Warn("mark read failed", zap.String("conversation", id), zap.Error(err))
		return
	}
	s.status = fmt.Sprintf("conversation %s: read", id)
	s.dirty = true
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

type browser struct {
	sess    *session
	table   tableview.Model[table.Record]
	watcher *fileWatcher
	width   int
	height  int
}

func newBrowser(s *session, rows []table.Record) browser {
	cfg := tableview.Config[table.Record]{
		Table:           s.tableOptions(),
		Style:           tableview.DefaultStyle(),
		ShowHelp:        s.opts.help,
		HighlightDetail: s.opts.highlight,
		Logger:          s.log,
	}
	return browser{sess: s, table: tableview.New(rows, cfg)}
}

func (m browser) Init() tea.Cmd {
	if m.watcher != nil {
		return m.watcher.wait()
	}
	return nil
}

func (m browser) title() string {
	name := m.sess.opts.section
	if m.sess.opts.records != "" {
		name = m.sess.opts.records
	}
	return titleStyle.Render("trueke · " + name)
}

func (m browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table = m.table.SetSize(msg.Width, max(msg.Height-2, 0))
		return m, nil
	case tea.KeyMsg:
		// q belongs to the filter box and the action menu while they are open.
		typing := m.table.Filtering() || m.table.MenuOpen()
		if msg.Type == tea.KeyCtrlC || key.Matches(msg, quitKey) && !typing {
			return m, tea.Quit
		}
	case fileChangedMsg:
		m.reload("reloaded")
		if m.watcher == nil {
			return m, nil
		}
		return m, m.watcher.wait()
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	if m.sess.dirty {
		m.reload("")
		m.sess.dirty = false
	}
	return m, cmd
}

func (m *browser) reload(status string) {
	rows, err := m.sess.load()
	if err != nil {
		m.sess.status = "reload failed: " + err.Error()
		m.sess.log.Warn("reload failed", zap.Error(err))
		return
	}
	m.table = m.table.SetRows(rows)
	if status != "" {
		m.sess.status = fmt.Sprintf("%s %d row(s)", status, len(rows))
	}
}

func (m browser) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.title(),
		m.table.View(),
		statusStyle.Render(m.sess.status),
	)
}
