package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/azalim25/cfoescala-sub000/config"
	"github.com/azalim25/cfoescala-sub000/internal/dto"
	"github.com/azalim25/cfoescala-sub000/internal/duty"
	"github.com/azalim25/cfoescala-sub000/internal/service"
)

// ── ranking ──

var (
	rankingTypes         []string
	rankingExcludeManual bool
	rankingXLSX          string
)

var rankingCmd = &cobra.Command{
	Use:   "ranking",
	Short: "Ranking de horas do efetivo",
	Args:  cobra.NoArgs,
	RunE:  runRanking,
}

func init() {
	rankingCmd.Flags().StringSliceVarP(&rankingTypes, "type", "t", nil, "tipos de serviço considerados (repetível)")
	rankingCmd.Flags().BoolVar(&rankingExcludeManual, "exclude-manual", false, "ignora os contadores manuais")
	rankingCmd.Flags().StringVar(&rankingXLSX, "xlsx", "", "grava a planilha no caminho informado em vez de imprimir")
}

func runRanking(cmd *cobra.Command, _ []string) error {
	q := &dto.RankingQuery{Types: rankingTypes, ExcludeManual: rankingExcludeManual}
	return withService(func(_ *config.Config, svc *service.Service) error {
		ctx := cmd.Context()
		if rankingXLSX != "" {
			buf, _, err := svc.Export.RankingWorkbook(ctx, q)
			if err != nil {
				return err
			}
			return os.WriteFile(rankingXLSX, buf.Bytes(), 0o644)
		}

		rows, err := svc.Report.Ranking(ctx, q)
		if err != nil {
			return err
		}
		tw := newTable(cmd.OutOrStdout())
		fmt.Fprintln(tw, "POS\tPOSTO\tNOME\tESCALA (h)\tMANUAL (h)\tTOTAL (h)")
		for _, r := range rows {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
				r.Position, r.Rank, r.Name, hours(r.TimelineHours), hours(r.ManualHours), hours(r.TotalHours))
		}
		return tw.Flush()
	})
}

// ── carga ──

var workloadCmd = &cobra.Command{
	Use:   "workload [member-id]",
	Short: "Carga horária de todo o efetivo ou detalhada de um militar",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runWorkload,
}

func runWorkload(cmd *cobra.Command, args []string) error {
	return withService(func(_ *config.Config, svc *service.Service) error {
		ctx := cmd.Context()
		tw := newTable(cmd.OutOrStdout())

		if len(args) == 1 {
			w, err := svc.Report.Workload(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(tw, "%s %s\n\n", w.Rank, w.Name)
			fmt.Fprintln(tw, "TIPO\tESCALA\tMANUAL\tTOTAL")
			for _, l := range w.Breakdown {
				if l.Type.QuantityBased() {
					fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n", l.Type, l.TimelineUnits, l.ManualUnits, l.Units())
					continue
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", l.Type, hours(l.TimelineHours), hours(l.ManualHours), hours(l.Hours()))
			}
			fmt.Fprintf(tw, "TOTAL\t\t\t%s h / %d\n", hours(w.TotalHours), w.TotalUnits)
			return tw.Flush()
		}

		list, err := svc.Report.Workloads(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(tw, "POSTO\tNOME\tHORAS\tOCORRÊNCIAS")
		for _, w := range list {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", w.Rank, w.Name, hours(w.TotalHours), w.TotalUnits)
		}
		return tw.Flush()
	})
}

// ── matriz ──

var matrixTiers []int

var matrixCmd = &cobra.Command{
	Use:   "matrix",
	Short: "Estágios por local oficial e faixa de duração",
	Args:  cobra.NoArgs,
	RunE:  runMatrix,
}

func init() {
	matrixCmd.Flags().IntSliceVar(&matrixTiers, "tier", nil, "faixas em horas (padrão 12 e 24)")
}

func runMatrix(cmd *cobra.Command, _ []string) error {
	return withService(func(_ *config.Config, svc *service.Service) error {
		m, err := svc.Report.Matrix(cmd.Context(), &dto.MatrixQuery{Tiers: matrixTiers})
		if err != nil {
			return err
		}

		tw := newTable(cmd.OutOrStdout())
		head := []string{"POSTO", "NOME"}
		for _, loc := range m.Locations {
			for _, tier := range m.Tiers {
				head = append(head, fmt.Sprintf("%s %dh", loc, tier))
			}
		}
		head = append(head, "TOTAL")
		fmt.Fprintln(tw, strings.Join(head, "\t"))

		for _, row := range m.Rows {
			cols := []string{row.Rank, row.Name}
			for i := range m.Locations {
				for j := range m.Tiers {
					cols = append(cols, matrixCell(row.Cells[i][j]))
				}
			}
			cols = append(cols, fmt.Sprint(row.Total))
			fmt.Fprintln(tw, strings.Join(cols, "\t"))
		}
		return tw.Flush()
	})
}

func matrixCell(c duty.MatrixCell) string {
	if c.Total() == 0 {
		return "-"
	}
	return fmt.Sprintf("%d+%d", c.Manual, c.Timeline)
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func hours(h float64) string {
	return fmt.Sprintf("%.1f", duty.Round1(h))
}
