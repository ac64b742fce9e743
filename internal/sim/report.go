package sim

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/vovakirdan/colorblast/internal/board"
	"github.com/vovakirdan/colorblast/internal/config"
)

var lang = language.English

// UniformityAlpha is the p-value below which spawn colors are reported as
// not uniform.
const UniformityAlpha = 0.001

// Report aggregates a simulation run.
type Report struct {
	Level   string
	Rules   board.Rules
	Palette config.Palette
	Seed    uint64

	Games      int
	Stalled    int // Games that ran out of legal moves
	Turns      int
	Removed    int
	Shuffles   int
	Recolors   int
	Violations int // Turns that left the board partly empty or deadlocked

	GroupSizes  []float64 // Size of every removed group, in game order
	SpawnCounts []int     // Spawned tiles per active color, level start included
	Elapsed     time.Duration

	MeanGroup   float64
	StdGroup    float64
	MedianGroup float64
	MaxGroup    float64
	ChiSquare   float64 // Statistic of SpawnCounts against a uniform spread
	PValue      float64
}

func newReport(l config.Level, p config.Palette, r board.Rules, seed uint64) *Report {
	return &Report{
		Level:       l.ID,
		Rules:       r,
		Palette:     p,
		Seed:        seed,
		SpawnCounts: make([]int, r.ColorCount),
	}
}

func (r *Report) add(st gameStats) {
	r.Games++
	if st.stalled {
		r.Stalled++
	}
	r.Turns += st.turns
	r.Removed += st.removed
	r.Shuffles += st.shuffles
	r.Recolors += st.recolors
	r.Violations += st.violations
	r.GroupSizes = append(r.GroupSizes, st.groupSizes...)
	for i, n := range st.spawns {
		r.SpawnCounts[i] += n
	}
}

// finish computes the summary statistics.
func (r *Report) finish() {
	if len(r.GroupSizes) > 0 {
		r.MeanGroup, r.StdGroup = stat.MeanStdDev(r.GroupSizes, nil)
		if math.IsNaN(r.StdGroup) {
			r.StdGroup = 0
		}
		sorted := slices.Clone(r.GroupSizes)
		slices.Sort(sorted)
		r.MedianGroup = stat.Quantile(0.5, stat.Empirical, sorted, nil)
		r.MaxGroup = sorted[len(sorted)-1]
	}
	r.ChiSquare, r.PValue = uniformity(r.SpawnCounts)
}

// Uniform reports whether spawn colors pass the uniformity test.
func (r *Report) Uniform() bool {
	return r.PValue >= UniformityAlpha
}

// uniformity runs a chi-square goodness-of-fit test of counts against equal
// expected frequencies. Fewer than two categories or no observations pass.
func uniformity(counts []int) (chi2, p float64) {
	total := 0
	for _, n := range counts {
		total += n
	}
	if len(counts) < 2 || total == 0 {
		return 0, 1
	}

	expected := float64(total) / float64(len(counts))
	for _, n := range counts {
		d := float64(n) - expected
		chi2 += d * d / expected
	}
	dist := distuv.ChiSquared{K: float64(len(counts) - 1)}
	return chi2, dist.Survival(chi2)
}

// String renders the report as two tables.
func (r *Report) String() string {
	p := message.NewPrinter(lang)

	summary := map[string]string{
		"Level":          r.Level,
		"Board":          fmt.Sprintf("%dx%d, %d colors, match %d, gravity %s", r.Rules.Rows, r.Rules.Cols, r.Rules.ColorCount, r.Rules.MatchThreshold, r.Rules.Gravity),
		"Seed":           fmt.Sprintf("%d", r.Seed),
		"Games":          p.Sprintf("%d", r.Games),
		"Stalled":        p.Sprintf("%d", r.Stalled),
		"Turns":          p.Sprintf("%d", r.Turns),
		"Tiles Removed":  p.Sprintf("%d", r.Removed),
		"Shuffles":       p.Sprintf("%d", r.Shuffles),
		"Recolors":       p.Sprintf("%d", r.Recolors),
		"Violations":     p.Sprintf("%d", r.Violations),
		"Group Mean/Std": p.Sprintf("%.2f / %.2f", r.MeanGroup, r.StdGroup),
		"Group Med/Max":  p.Sprintf("%.0f / %.0f", r.MedianGroup, r.MaxGroup),
		"Elapsed":        r.Elapsed.Round(time.Millisecond).String(),
	}
	keys := []string{"Level", "Board", "Seed", "Games", "Stalled", "Turns", "Tiles Removed", "Shuffles", "Recolors", "Violations", "Group Mean/Std", "Group Med/Max", "Elapsed"}

	total := 0
	for _, n := range r.SpawnCounts {
		total += n
	}
	spawns := make(map[string]string, len(r.SpawnCounts)+2)
	spawnKeys := make([]string, 0, len(r.SpawnCounts)+2)
	for i, n := range r.SpawnCounts {
		letter := string(board.Color(i).Letter())
		name := letter
		if i < len(r.Palette.Colors) && r.Palette.Colors[i].Name != "" {
			name = r.Palette.Colors[i].Name
		}
		// Rows are per color index; a reused name gets its letter.
		if _, dup := spawns[name]; dup {
			name += " (" + letter + ")"
		}
		share := 0.0
		if total > 0 {
			share = 100 * float64(n) / float64(total)
		}
		spawns[name] = p.Sprintf("%d (%.2f%%)", n, share)
		spawnKeys = append(spawnKeys, name)
	}
	verdict := "uniform"
	if !r.Uniform() {
		verdict = "NOT uniform"
	}
	spawns["Chi-square"] = p.Sprintf("%.3f, p=%.4f", r.ChiSquare, r.PValue)
	spawns["Verdict"] = verdict
	spawnKeys = append(spawnKeys, "Chi-square", "Verdict")

	return fmtTable("ColorBlast Simulation", keys, summary) + "\n" + fmtTable("Spawned Colors", spawnKeys, spawns)
}

func fmtTable(title string, keys []string, msg map[string]string) string {
	maxKeyLen := 0
	maxValLen := 0
	for k, m := range msg {
		if w := runewidth.StringWidth(k); w > maxKeyLen {
			maxKeyLen = w
		}
		if w := runewidth.StringWidth(m); w > maxValLen {
			maxValLen = w
		}
	}
	maxKeyLen += 2
	maxValLen += 2

	totalInner := maxKeyLen + maxValLen + 1
	titleW := runewidth.StringWidth(title)
	if titleW > totalInner {
		maxValLen += titleW - totalInner
		totalInner = titleW
	}

	divider := "+" + strings.Repeat("-", maxKeyLen) + "+" + strings.Repeat("-", maxValLen) + "+\n"
	top := "+" + strings.Repeat("-", totalInner) + "+\n"

	left := (totalInner - titleW) / 2
	right := totalInner - titleW - left

	var b strings.Builder
	b.WriteString(top)
	fmt.Fprintf(&b, "|%s%s%s|\n", blank(left), title, blank(right))
	b.WriteString(divider)
	for _, k := range keys {
		fmt.Fprintf(&b, "| %s%s | %s%s |\n", k, blank(maxKeyLen-2-runewidth.StringWidth(k)), msg[k], blank(maxValLen-2-runewidth.StringWidth(msg[k])))
	}
	b.WriteString(divider)
	return b.String()
}

func blank(w int) string {
	if w < 1 {
		return ""
	}
	return strings.Repeat(" ", w)
}
