package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iw2rmb/trueke/market"
	"github.com/iw2rmb/trueke/mockup"
	"github.com/iw2rmb/trueke/table"
	"github.com/iw2rmb/trueke/tableview"
)

func newMockupCmd(root *rootOptions) *cobra.Command {
	var (
		frameName string
		out       string
		sections  []string
		data      string
	)
	cmd := &cobra.Command{
		Use:   "mockup",
		Short: "Render section tables into an SVG device frame",
		Example: `  trueke mockup --frame macbook --section items --out items.svg
  trueke mockup --frame dual-monitor --section items --section reports`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			frame, err := mockup.ParseFrame(frameName)
			if err != nil {
				return err
			}
			catalog, err := loadCatalog(data)
			if err != nil {
				return err
			}
			screens, err := screenLines(catalog, frame, sections)
			if err != nil {
				return err
			}

			err = writeOutput(cmd.OutOrStdout(), out, func(w io.Writer) error {
				return mockup.Render(w, frame, screens...)
			})
			if err != nil {
				return fmt.Errorf("render %s: %w", frame, err)
			}
			root.logger.Info("mockup rendered",
				zap.Stringer("frame", frame),
				zap.Strings("sections", sections),
				zap.String("out", out))
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&frameName, "frame", mockup.Macbook.String(), "device frame: macbook, ipad, monitor, dual-monitor")
	f.StringVarP(&out, "out", "o", "-", "output file, - for stdout")
	f.StringArrayVarP(&sections, "section", "s", nil, "section per screen, left to right (default: items, reports)")
	f.StringVar(&data, "data", "", "fixture catalog YAML file")
	return cmd
}

// screenLines renders one section table per frame screen, sized to the
// screen's text grid.
func screenLines(c *market.Catalog, frame mockup.Frame, sections []string) ([][]string, error) {
	screens := frame.Screens()
	if len(sections) == 0 {
		sections = []string{market.SectionItems, market.SectionReports}[:len(screens)]
	}
	if len(sections) > len(screens) {
		return nil, fmt.Errorf("%s has %d screen(s), got %d sections", frame, len(screens), len(sections))
	}

	out := make([][]string, len(sections))
	for i, name := range sections {
		rows, err := c.Records(name)
		if err != nil {
			return nil, err
		}
		cols, height := screens[i].Grid()
		m := tableview.New(rows, tableview.Config[table.Record]{
			Table:          table.Options[table.Record]{EnablePagination: true, PageSize: max(height-4, 1)},
			MaxColumnWidth: 24,
		})
		out[i] = strings.Split(m.SetSize(cols, height).View(), "\n")
	}
	return out, nil
}

// writeOutput runs write against stdout for "" or "-", otherwise against the
// created file.
func writeOutput(stdout io.Writer, path string, write func(io.Writer) error) error {
	if path == "" || path == "-" {
		return write(stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
