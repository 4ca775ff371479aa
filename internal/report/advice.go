package report

import "github.com/shopspring/decimal"

// Severity tags an advisory for styling.
type Severity string

const (
	SeverityDanger  Severity = "danger"
	SeverityWarning Severity = "warning"
	SeveritySuccess Severity = "success"
	SeverityInfo    Severity = "info"
)

// Advisory is one budget suggestion derived from the monthly totals.
// Texts are the original UI's Swahili messages; Icon is a Font Awesome
// tag consumed by the templates.
type Advisory struct {
	Severity Severity
	Icon     string
	Text     string
}

var (
	ratioLowSavings     = decimal.RequireFromString("0.1")
	ratioHealthySavings = decimal.RequireFromString("0.3")
	ratioRecurringCap   = decimal.RequireFromString("0.5")
)

// buildAdvice evaluates the suggestion rules against a computed report.
//
// The first three rules are an if/else-if chain and mutually exclusive;
// the daily-limit and recurring-bill rules append independently. The
// order is user-visible behavior, so do not rearrange it.
func buildAdvice(r *Report) []Advisory {
	var out []Advisory

	if r.Balance.IsNegative() {
		out = append(out, Advisory{
			Severity: SeverityDanger,
			Icon:     "fa-exclamation-triangle",
			Text:     "Tahadhari: Umetumia zaidi ya mapato yako mwezi huu! Angalia matumizi yako ya anasa.",
		})
	} else if r.TotalIncome.IsPositive() && r.Balance.LessThan(r.TotalIncome.Mul(ratioLowSavings)) {
		out = append(out, Advisory{
			Severity: SeverityWarning,
			Icon:     "fa-lightbulb",
			Text:     "Ushauri: Akiba yako ni ndogo. Jaribu kuweka akiba angalau 10% ya mapato yako.",
		})
	} else if r.Balance.GreaterThan(r.TotalIncome.Mul(ratioHealthySavings)) {
		out = append(out, Advisory{
			Severity: SeveritySuccess,
			Icon:     "fa-chart-line",
			Text:     "Vizuri sana! Unaweka akiba nzuri. Fikiria kuwekeza kiasi hiki.",
		})
	}

	if r.DailyLimitStatus == LimitExceeded {
		out = append(out, Advisory{
			Severity: SeverityDanger,
			Icon:     "fa-hand-holding-usd",
			Text:     "Umezidi bajeti yako ya siku. Punguza matumizi yasiyo ya lazima leo.",
		})
	}

	if r.Goal.MonthlySalary.IsPositive() &&
		r.RecurringTotal.GreaterThan(r.Goal.MonthlySalary.Mul(ratioRecurringCap)) {
		out = append(out, Advisory{
			Severity: SeverityWarning,
			Icon:     "fa-file-invoice-dollar",
			Text:     "Matumizi ya kudumu (kodi, vifurushi) yanachukua zaidi ya 50% ya mshahara wako.",
		})
	}

	if len(out) == 0 {
		out = append(out, Advisory{
			Severity: SeverityInfo,
			Icon:     "fa-robot",
			Text:     "Mfumo unaendelea kujifunza kutokana na matumizi yako. Endelea kurekodi!",
		})
	}

	return out
}
