package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/slotpool"
	sperrors "github.com/wippyai/slotpool/errors"
	"github.com/wippyai/slotpool/pool"
	"github.com/wippyai/slotpool/resource"
)

func newSimulateCmd(opts *options) *cobra.Command {
	var (
		kindName string
		cycles   int
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Churn one pool and report reuse and stale-handle rejection",
		RunE: func(cmd *cobra.Command, _ []string) error {
			kind, ok := resource.ParseKind(kindName)
			if !ok {
				return fmt.Errorf("unknown kind %q", kindName)
			}
			if cycles < 0 {
				return fmt.Errorf("cycles must not be negative")
			}

			_, reg, log, err := setup(opts)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()
			defer reg.Close()

			res, err := simulate(reg, kind, cycles)
			if err != nil {
				return err
			}
			log.Info("simulation finished",
				zap.Stringer("kind", kind),
				zap.Int("cycles", cycles),
				zap.Int("stale_rejected", res.StaleRejected))
			return printSimulation(cmd.OutOrStdout(), res, reg.Stats())
		},
	}
	cmd.Flags().StringVarP(&kindName, "kind", "k", "buffer", "Resource kind (buffer, image, shader, pipeline, pass, context)")
	cmd.Flags().IntVarP(&cycles, "cycles", "n", 4, "Release/reallocate cycles")
	return cmd
}

type simResult struct {
	Kind          resource.Kind
	Filled        int
	Cycles        int
	Reallocated   int
	StaleRejected int
	StaleAccepted int
}

// simulate fills the pool for kind, then repeatedly releases every other
// live handle and reallocates, checking that released handles stay dead.
func simulate(reg *resource.Registry, kind resource.Kind, cycles int) (simResult, error) {
	res := simResult{Kind: kind, Cycles: cycles}
	m := newMaker(reg)

	// Support resources for pipelines and passes are made up front so the
	// fill loop sees only the target pool run out.
	switch kind {
	case resource.KindPipeline:
		if _, err := m.supportShader(); err != nil {
			return res, err
		}
	case resource.KindPass:
		if _, err := m.supportImage(); err != nil {
			return res, err
		}
	}

	var live []slotpool.Handle
	for {
		h, err := m.make(kind)
		if errors.Is(err, sperrors.ErrPoolExhausted) {
			break
		}
		if err != nil {
			return res, err
		}
		live = append(live, h)
	}
	res.Filled = len(live)

	for c := 0; c < cycles; c++ {
		var released []slotpool.Handle
		kept := live[:0:0]
		for i, h := range live {
			if i%2 == 0 {
				if err := reg.Destroy(kind, h); err != nil {
					return res, err
				}
				released = append(released, h)
				continue
			}
			kept = append(kept, h)
		}

		for range released {
			h, err := m.make(kind)
			if err != nil {
				return res, err
			}
			kept = append(kept, h)
			res.Reallocated++
		}

		for _, h := range released {
			if reg.StateOf(kind, h) == pool.StateFree {
				res.StaleRejected++
			} else {
				res.StaleAccepted++
			}
		}
		live = kept
	}
	return res, nil
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)

func printSimulation(w io.Writer, res simResult, stats []pool.Stats) error {
	fmt.Fprintf(w, "kind=%s filled=%d cycles=%d reallocated=%d stale_rejected=%d stale_accepted=%d\n\n",
		res.Kind, res.Filled, res.Cycles, res.Reallocated, res.StaleRejected, res.StaleAccepted)

	_, err := fmt.Fprintln(w, statsTable(stats))
	return err
}

func statsTable(stats []pool.Stats) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers("pool", "capacity", "live", "free", "allocs", "releases", "exhausted", "wraps")
	for _, s := range stats {
		t.Row(
			s.Name,
			strconv.Itoa(s.Capacity),
			strconv.Itoa(s.Live),
			strconv.Itoa(s.Free),
			strconv.FormatUint(s.Allocations, 10),
			strconv.FormatUint(s.Releases, 10),
			strconv.FormatUint(s.Exhaustions, 10),
			strconv.FormatUint(s.GenerationWraps, 10),
		)
	}
	return t.Render()
}
