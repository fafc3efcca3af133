package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/samber/lo"
	"github.com/trebuchet-org/hoist/internal/domain"
	"github.com/trebuchet-org/hoist/internal/domain/models"
	"github.com/trebuchet-org/hoist/internal/usecase"
)

// Color styles for table format
var (
	nsBg            = color.BgYellow
	chainBg         = color.BgCyan
	nsHeader        = color.New(nsBg, color.FgBlack)
	nsHeaderBold    = color.New(nsBg, color.FgBlack, color.Bold)
	chainHeader     = color.New(chainBg, color.FgBlack)
	chainHeaderBold = color.New(chainBg, color.FgBlack, color.Bold)
	addressStyle    = color.New(color.FgWhite)
	timestampStyle  = color.New(color.Faint)
	implPrefixStyle = color.New(color.Faint)
	idStyle         = color.New(color.FgCyan)
)

// DeploymentsRenderer renders deployment lists grouped by namespace and chain
type DeploymentsRenderer struct {
	out   io.Writer
	color bool
}

// NewDeploymentsRenderer creates a new deployments renderer
func NewDeploymentsRenderer(out io.Writer, color bool) *DeploymentsRenderer {
	return &DeploymentsRenderer{
		out:   out,
		color: color,
	}
}

// RenderDeploymentList renders deployments in the tree-style format
func (r *DeploymentsRenderer) RenderDeploymentList(result *usecase.DeploymentListResult) error {
	if len(result.Deployments) == 0 {
		fmt.Fprintln(r.out, "No deployments found")
		return nil
	}

	groups := lo.GroupBy(result.Deployments, func(d *models.ProxyDeployment) string { return d.Namespace })
	namespaces := lo.Keys(groups)
	sort.Strings(namespaces)

	for _, ns := range namespaces {
		nsLabel := fmt.Sprintf("%-12s", "namespace:")
		nsValue := fmt.Sprintf("%-30s", strings.ToUpper(ns))
		fmt.Fprintln(r.out, nsHeader.Sprintf("   ◎ %s %s", nsLabel, nsHeaderBold.Sprint(nsValue)))

		byChain := lo.GroupBy(groups[ns], func(d *models.ProxyDeployment) uint64 { return d.ChainID })
		chainIDs := lo.Keys(byChain)
		sort.Slice(chainIDs, func(i, j int) bool { return chainIDs[i] < chainIDs[j] })

		for idx, chainID := range chainIDs {
			treePrefix := "├─"
			continuationPrefix := "│ "
			if idx == len(chainIDs)-1 {
				treePrefix = "└─"
				continuationPrefix = "  "
			}

			chainLabel := fmt.Sprintf("%-12s", "chain:")
			chainValue := fmt.Sprintf("%-30s", chainName(byChain[chainID][0]))
			fmt.Fprintf(r.out, "%s%s%s\n",
				treePrefix,
				chainHeader.Sprintf(" ⛓ %s ", chainLabel),
				chainHeaderBold.Sprint(chainValue))
			fmt.Fprintln(r.out, continuationPrefix)

			fmt.Fprintln(r.out, r.renderTable(byChain[chainID], continuationPrefix))
			fmt.Fprintln(r.out, continuationPrefix)
		}
	}

	r.renderSummary(result.Summary)
	return nil
}

func (r *DeploymentsRenderer) renderTable(deployments []*models.ProxyDeployment, prefix string) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.SeparateRows = false
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateHeader = false
	t.Style().Options.SeparateColumns = false
	t.Style().Box = table.BoxStyle{
		PaddingRight: "   ",
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft},
		{Number: 3, Align: text.AlignLeft},
		{Number: 4, Align: text.AlignLeft},
	})

	for _, dep := range deployments {
		t.AppendRow(table.Row{
			prefix + r.coloredName(dep),
			addressStyle.Sprint(dep.ProxyAddress),
			idStyle.Sprint(dep.ShortID()),
			timestampStyle.Sprint(dep.CreatedAt.Format("2006-01-02 15:04:05")),
		})
		t.AppendRow(table.Row{
			prefix + implPrefixStyle.Sprint("└─ impl"),
			implPrefixStyle.Sprint(dep.ImplementationAddress),
			"",
			"",
		})
	}

	return t.Render()
}

func (r *DeploymentsRenderer) coloredName(dep *models.ProxyDeployment) string {
	label := fmt.Sprintf("%s [%s]", dep.ContractName, KindLabel(string(dep.Kind)))
	if dep.Kind == domain.ProxyKindUUPS {
		return color.New(color.FgMagenta, color.Bold).Sprint(label)
	}
	return color.New(color.FgGreen, color.Bold).Sprint(label)
}

func (r *DeploymentsRenderer) renderSummary(summary usecase.DeploymentSummary) {
	kinds := lo.Keys(summary.ByKind)
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	parts := lo.Map(kinds, func(k domain.ProxyKind, _ int) string {
		return fmt.Sprintf("%d %s", summary.ByKind[k], KindLabel(string(k)))
	})

	noun := "deployments"
	if summary.Total == 1 {
		noun = "deployment"
	}
	fmt.Fprintf(r.out, "Total: %d %s (%s)\n", summary.Total, noun, strings.Join(parts, ", "))
}

func chainName(dep *models.ProxyDeployment) string {
	if dep.Network != "" {
		return fmt.Sprintf("%d (%s)", dep.ChainID, dep.Network)
	}
	return fmt.Sprintf("%d", dep.ChainID)
}
