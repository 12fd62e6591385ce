package solverHandler

import (
	contextPkg "ProjectCube/pkg/context"
	"ProjectCube/pkg/handlerUtil"
	"bytes"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

// GetComparisonChart renders the solver comparison as a standalone HTML
// bar chart.
func (h *SolverHandler) GetComparisonChart(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 5*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	benchmarks, err := h.solverService.Benchmarks(c)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_comparison_chart")
	}

	names := make([]string, 0, len(benchmarks))
	moves := make([]opts.BarData, 0, len(benchmarks))
	times := make([]opts.BarData, 0, len(benchmarks))
	for _, b := range benchmarks {
		names = append(names, string(b.Solver))
		moves = append(moves, opts.BarData{Value: b.AvgMoveCount})
		times = append(times, opts.BarData{Value: b.AvgSolveMS})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Solver Comparison", Width: "900px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Solver Comparison",
			Subtitle: "Classical solver figures are canned reference data",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(names)
	bar.AddSeries("avg moves", moves)
	bar.AddSeries("avg solve time (ms)", times)

	var buf bytes.Buffer
	if err := bar.Render(&buf); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "render_chart")
	}

	ctx.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return ctx.Status(fiber.StatusOK).Send(buf.Bytes())
}
